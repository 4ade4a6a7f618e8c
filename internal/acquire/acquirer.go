package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/logger"
	"github.com/lodehq/lode/internal/service"
)

// LauncherName is the loader binary the host service boots from.
const LauncherName = "fabric-server-launch.jar"

// Acquirer fetches the loader binary for a game version and a loader
// version (or "latest") and returns the local path it was placed at. How
// the bytes are obtained is this package's business alone; the sync engine
// only consumes the result and treats failure as non-fatal.
type Acquirer interface {
	Fetch(ctx context.Context, gameVersion, loaderVersion string) (string, error)
}

// MetaAcquirer resolves loader and installer versions against the loader
// project's meta API and downloads the server launcher jar.
type MetaAcquirer struct {
	Client     service.HTTPClient
	BaseURL    string
	InstallDir string
}

func New(client service.HTTPClient, baseURL, installDir string) *MetaAcquirer {
	if client == nil {
		client = service.NewHTTPClient(30 * time.Second)
	}
	return &MetaAcquirer{Client: client, BaseURL: baseURL, InstallDir: installDir}
}

type loaderEntry struct {
	Loader struct {
		Version string `json:"version"`
		Stable  bool   `json:"stable"`
	} `json:"loader"`
}

type installerEntry struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

func (a *MetaAcquirer) Fetch(ctx context.Context, gameVersion, loaderVersion string) (string, error) {
	if loaderVersion == "" || loaderVersion == "latest" {
		resolved, err := a.latestLoader(ctx, gameVersion)
		if err != nil {
			return "", err
		}
		loaderVersion = resolved
	}

	installer, err := a.latestInstaller(ctx)
	if err != nil {
		return "", err
	}

	jarURL := fmt.Sprintf("%s/versions/loader/%s/%s/%s/server/jar",
		a.BaseURL, gameVersion, loaderVersion, installer)

	logger.Info("Fetching loader %s for game %s", loaderVersion, gameVersion)

	data, err := service.FetchBytes(ctx, a.Client, jarURL)
	if err != nil {
		return "", fmt.Errorf("%w: download launcher: %v", errs.ErrAcquisition, err)
	}

	target := filepath.Join(a.InstallDir, LauncherName)
	if err := a.swapIn(target, data); err != nil {
		return "", err
	}

	logger.Success("Loader %s installed at %s", loaderVersion, target)
	return target, nil
}

// swapIn writes the new launcher next to the target, moves any previous
// launcher aside as .old, then renames the new one into place.
func (a *MetaAcquirer) swapIn(target string, data []byte) error {
	tmp, err := os.CreateTemp(a.InstallDir, "lode-loader-*.jar")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", errs.ErrAcquisition, err)
	}

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: write launcher: %v", errs.ErrAcquisition, err2of(writeErr, closeErr))
	}

	if _, err := os.Stat(target); err == nil {
		if err := os.Rename(target, target+".old"); err != nil {
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("%w: back up previous launcher: %v", errs.ErrAcquisition, err)
		}
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		// best-effort rollback of the .old move
		_ = os.Rename(target+".old", target)
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: install launcher: %v", errs.ErrAcquisition, err)
	}
	return os.Chmod(target, 0o644)
}

func (a *MetaAcquirer) latestLoader(ctx context.Context, gameVersion string) (string, error) {
	var entries []loaderEntry
	url := fmt.Sprintf("%s/versions/loader/%s", a.BaseURL, gameVersion)
	if err := a.getJSON(ctx, url, &entries); err != nil {
		return "", err
	}

	for _, e := range entries {
		if e.Loader.Stable {
			return e.Loader.Version, nil
		}
	}
	if len(entries) > 0 {
		return entries[0].Loader.Version, nil
	}
	return "", fmt.Errorf("%w: no loader published for game %s", errs.ErrAcquisition, gameVersion)
}

func (a *MetaAcquirer) latestInstaller(ctx context.Context) (string, error) {
	var entries []installerEntry
	if err := a.getJSON(ctx, a.BaseURL+"/versions/installer", &entries); err != nil {
		return "", err
	}

	for _, e := range entries {
		if e.Stable {
			return e.Version, nil
		}
	}
	if len(entries) > 0 {
		return entries[0].Version, nil
	}
	return "", fmt.Errorf("%w: no installer published", errs.ErrAcquisition)
}

func (a *MetaAcquirer) getJSON(ctx context.Context, url string, out any) error {
	data, err := service.FetchBytes(ctx, a.Client, url)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrAcquisition, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", errs.ErrAcquisition, url, err)
	}
	return nil
}

func err2of(a, b error) error {
	if a != nil {
		return a
	}
	return b
}
