package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/utils"
)

// Store is the on-disk directory of installed mod archives. It exclusively
// owns artifact state and backups; nothing reads a backup back during a run.
type Store struct {
	dir       string
	backupDir string
}

// New ensures the artifact directory exists. Failure here is a setup error
// and aborts the run before any mod is processed.
func New(dir, backupDir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %v", errs.ErrFilesystem, dir, err)
	}
	return &Store{dir: dir, backupDir: backupDir}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// Exists reports whether an artifact with exactly this filename is installed.
func (s *Store) Exists(name string) bool {
	ok, err := utils.FileExists(s.Path(name))
	return err == nil && ok
}

// List returns the installed artifact filenames. No order is guaranteed.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", errs.ErrFilesystem, s.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Evict deletes every artifact whose name matches. The deleted names are
// returned so callers can log them.
func (s *Store) Evict(match func(name string) bool) ([]string, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, name := range names {
		if !match(name) {
			continue
		}
		if err := os.Remove(s.Path(name)); err != nil {
			return deleted, fmt.Errorf("%w: remove %s: %v", errs.ErrFilesystem, name, err)
		}
		deleted = append(deleted, name)
	}
	return deleted, nil
}

// Commit writes data under name, overwriting any previous artifact. The
// write goes to a temp file first and is renamed into place.
func (s *Store) Commit(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".lode-*.part")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", errs.ErrFilesystem, err)
	}

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		if writeErr != nil {
			return fmt.Errorf("%w: write %s: %v", errs.ErrFilesystem, name, writeErr)
		}
		return fmt.Errorf("%w: close %s: %v", errs.ErrFilesystem, name, closeErr)
	}

	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: rename %s: %v", errs.ErrFilesystem, name, err)
	}
	return os.Chmod(s.Path(name), 0o644)
}

// BackupAll copies every installed artifact into a fresh timestamped
// directory and returns its path. Invoked at most once per sync run, before
// the first mutation. Callers treat a failure as a warning, not an abort.
func (s *Store) BackupAll() (string, error) {
	names, err := s.List()
	if err != nil {
		return "", err
	}

	dest := filepath.Join(s.backupDir, "mods-"+time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir %s: %v", errs.ErrFilesystem, dest, err)
	}

	for _, name := range names {
		if err := copyFile(s.Path(name), filepath.Join(dest, name)); err != nil {
			return dest, err
		}
	}
	return dest, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", errs.ErrFilesystem, src, err)
	}
	defer utils.Close(in)

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", errs.ErrFilesystem, dst, err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("%w: copy %s: %v", errs.ErrFilesystem, dst, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: close %s: %v", errs.ErrFilesystem, dst, closeErr)
	}
	return nil
}
