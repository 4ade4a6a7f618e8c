package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir, which requires Go 1.24; this keeps the
// tests runnable on Go 1.21.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgYAML := `install:
  dir: /srv/game
game:
  version: "1.21.1"
loader:
  kind: fabric
backup:
  enabled: false
service:
  unit: game-server.service
  restart_on_update: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lode.yaml"), []byte(cfgYAML), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/game", cfg.InstallDir)
	assert.Equal(t, filepath.Join("/srv/game", "mods"), cfg.ModsDir, "mods dir defaults under install dir")
	assert.Equal(t, filepath.Join("/srv/game", "backups"), cfg.BackupDir)
	assert.Equal(t, "1.21.1", cfg.GameVersion)
	assert.Equal(t, "fabric", cfg.LoaderKind)
	assert.Equal(t, "latest", cfg.LoaderVersion)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.BackupEnabled)
	assert.Equal(t, "game-server.service", cfg.ServiceUnit)
	assert.True(t, cfg.RestartOnUpdate)
}

func TestLoadEnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LODE_GAME_VERSION", "1.20.4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "1.20.4", cfg.GameVersion)
	assert.True(t, cfg.BackupEnabled)
}

func TestLoadRequiresGameVersion(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LODE_GAME_VERSION", "1.21.1")
	t.Setenv("LODE_HTTP_TIMEOUT_MS", "0")

	_, err := Load()
	assert.Error(t, err)
}
