package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultConfigName = "lode"

// Config is the settings surface for one deployment. The tracked-mod list
// lives separately in ModsFile (see internal/manifest).
type Config struct {
	InstallDir string
	ModsDir    string
	ModsFile   string

	RegistryURL string
	GameVersion string
	LoaderKind  string

	// LoaderVersion is an explicit loader version or "latest".
	LoaderVersion string
	LoaderMetaURL string

	RequestTimeout time.Duration

	BackupEnabled bool
	BackupDir     string

	ServiceUnit     string
	RestartOnUpdate bool
}

// Load reads lode.yaml from the working directory (or config/), with
// LODE_-prefixed environment overrides. A missing file is fine; env-only
// setups are supported.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(defaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("config")

	v.SetEnvPrefix("LODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("install.dir", ".")
	v.SetDefault("mods.dir", "")
	v.SetDefault("mods.file", "mods.yml")

	v.SetDefault("registry.url", "https://api.modrinth.com/v2")
	v.SetDefault("game.version", "")
	v.SetDefault("loader.kind", "fabric")
	v.SetDefault("loader.version", "latest")
	v.SetDefault("loader.meta_url", "https://meta.fabricmc.net/v2")

	v.SetDefault("http.timeout_ms", 30000)

	v.SetDefault("backup.enabled", true)
	v.SetDefault("backup.dir", "")

	v.SetDefault("service.unit", "")
	v.SetDefault("service.restart_on_update", false)

	// Config file is optional; env-only is fine.
	_ = v.ReadInConfig()

	cfg := Config{
		InstallDir:      v.GetString("install.dir"),
		ModsDir:         v.GetString("mods.dir"),
		ModsFile:        v.GetString("mods.file"),
		RegistryURL:     strings.TrimRight(v.GetString("registry.url"), "/"),
		GameVersion:     strings.TrimSpace(v.GetString("game.version")),
		LoaderKind:      strings.TrimSpace(v.GetString("loader.kind")),
		LoaderVersion:   strings.TrimSpace(v.GetString("loader.version")),
		LoaderMetaURL:   strings.TrimRight(v.GetString("loader.meta_url"), "/"),
		RequestTimeout:  time.Duration(v.GetInt("http.timeout_ms")) * time.Millisecond,
		BackupEnabled:   v.GetBool("backup.enabled"),
		BackupDir:       v.GetString("backup.dir"),
		ServiceUnit:     strings.TrimSpace(v.GetString("service.unit")),
		RestartOnUpdate: v.GetBool("service.restart_on_update"),
	}

	if cfg.ModsDir == "" {
		cfg.ModsDir = filepath.Join(cfg.InstallDir, "mods")
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(cfg.InstallDir, "backups")
	}

	if cfg.GameVersion == "" {
		return Config{}, fmt.Errorf("game.version must be set (edit lode.yaml or set LODE_GAME_VERSION)")
	}
	if cfg.LoaderKind == "" {
		return Config{}, fmt.Errorf("loader.kind must not be empty")
	}
	if cfg.RegistryURL == "" {
		return Config{}, fmt.Errorf("registry.url must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid http.timeout_ms %d", v.GetInt("http.timeout_ms"))
	}

	return cfg, nil
}
