package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lodehq/lode/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	m.Run()
}

func newTestStore(t *testing.T, files ...string) *Store {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("content of "+name), 0o644))
	}
	s, err := New(dir, filepath.Join(t.TempDir(), "backups"))
	require.NoError(t, err)
	return s
}

func TestStore_ExistsAndList(t *testing.T) {
	s := newTestStore(t, "alpha-1.0.jar", "beta-3.1.jar")

	assert.True(t, s.Exists("alpha-1.0.jar"))
	assert.False(t, s.Exists("alpha-2.0.jar"))

	names, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha-1.0.jar", "beta-3.1.jar"}, names)
}

func TestStore_ListSkipsDirectories(t *testing.T) {
	s := newTestStore(t, "alpha-1.0.jar")
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "nested"), 0o755))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha-1.0.jar"}, names)
}

func TestStore_CommitOverwrites(t *testing.T) {
	s := newTestStore(t, "alpha-1.0.jar")

	require.NoError(t, s.Commit("alpha-1.0.jar", []byte("new bytes")))

	data, err := os.ReadFile(s.Path("alpha-1.0.jar"))
	require.NoError(t, err)
	assert.Equal(t, "new bytes", string(data))

	// no temp leftovers
	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha-1.0.jar"}, names)
}

func TestStore_EvictSlugSubstring(t *testing.T) {
	s := newTestStore(t,
		"Alpha-1.0.jar",
		"alpha-extra-2.0.jar",
		"beta-3.1.jar",
		"alpha-notes.txt",
	)

	match := func(name string) bool {
		n := strings.ToLower(name)
		return strings.HasSuffix(n, ".jar") && strings.Contains(n, "alpha")
	}

	deleted, err := s.Evict(match)
	require.NoError(t, err)

	// The substring heuristic is case-insensitive and, on purpose, also
	// catches "alpha-extra" when evicting for slug "alpha". Non-archive
	// files are never touched.
	assert.ElementsMatch(t, []string{"Alpha-1.0.jar", "alpha-extra-2.0.jar"}, deleted)

	names, err := s.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"beta-3.1.jar", "alpha-notes.txt"}, names)
}

func TestStore_BackupAll(t *testing.T) {
	s := newTestStore(t, "alpha-1.0.jar", "beta-3.1.jar")

	snap, err := s.BackupAll()
	require.NoError(t, err)

	entries, err := os.ReadDir(snap)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	data, err := os.ReadFile(filepath.Join(snap, "alpha-1.0.jar"))
	require.NoError(t, err)
	assert.Equal(t, "content of alpha-1.0.jar", string(data))

	// originals untouched
	assert.True(t, s.Exists("alpha-1.0.jar"))
	assert.True(t, s.Exists("beta-3.1.jar"))
}

func TestStore_BackupAllFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not a dir"), 0o644))

	s, err := New(dir, blocker)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha-1.0.jar"), []byte("x"), 0o644))

	_, err = s.BackupAll()
	assert.Error(t, err)
}
