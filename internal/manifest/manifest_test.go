package manifest

import (
	"path/filepath"
	"testing"

	"github.com/lodehq/lode/internal/logger"
	"github.com/lodehq/lode/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	m.Run()
}

func TestAddMods(t *testing.T) {
	m := &models.Manifest{Mods: []models.Mod{{ID: "fabric-api"}}}

	modified, err := AddMods(m, []string{"sodium", "fabric-api"}, false)
	require.NoError(t, err)
	assert.True(t, modified)
	assert.Len(t, m.Mods, 2, "already tracked ids are skipped silently")

	modified, err = AddMods(m, []string{"sodium"}, false)
	require.NoError(t, err)
	assert.False(t, modified)

	_, err = AddMods(m, nil, false)
	assert.Error(t, err)
}

func TestRemoveMods(t *testing.T) {
	m := &models.Manifest{Mods: []models.Mod{{ID: "fabric-api"}, {ID: "sodium"}}}

	removed, err := RemoveMods(m, []string{"sodium", "unknown"})
	require.NoError(t, err)
	assert.True(t, removed)
	require.Len(t, m.Mods, 1)
	assert.Equal(t, "fabric-api", m.Mods[0].ID)

	removed, err = RemoveMods(m, []string{"unknown"})
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mods.yml")

	in := &models.Manifest{Mods: []models.Mod{
		{ID: "sodium"},
		{ID: "fabric-api", Name: "Fabric API"},
		{ID: "lithium", Optional: true},
	}}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	require.Len(t, out.Mods, 3)

	// saved sorted by id
	assert.Equal(t, "fabric-api", out.Mods[0].ID)
	assert.Equal(t, "Fabric API", out.Mods[0].Name)
	assert.Equal(t, "lithium", out.Mods[1].ID)
	assert.True(t, out.Mods[1].Optional)
	assert.Equal(t, "sodium", out.Mods[2].ID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
