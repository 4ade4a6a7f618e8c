package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lodehq/lode/internal/models"
	"github.com/lodehq/lode/internal/utils"
)

// Load reads the tracked-mod manifest from path.
func Load(path string) (*models.Manifest, error) {
	var m models.Manifest
	if err := utils.FileReader(path, utils.FileTypeYAML, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes the manifest back to path, mods sorted by id.
func Save(path string, m *models.Manifest) error {
	out := *m
	out.Mods = append([]models.Mod(nil), m.Mods...)
	sort.Slice(out.Mods, func(i, j int) bool {
		return strings.ToLower(out.Mods[i].ID) < strings.ToLower(out.Mods[j].ID)
	})
	return utils.CreateFile(path, &out, utils.FileTypeYAML, 0o644)
}

// Find locates a tracked mod by id.
func Find(m *models.Manifest, id string) (*models.Mod, bool) {
	for idx := range m.Mods {
		if m.Mods[idx].ID == id {
			return &m.Mods[idx], true
		}
	}
	return nil, false
}

// AddMods appends new tracked mods if absent. Returns true if m was modified.
func AddMods(m *models.Manifest, ids []string, optional bool) (bool, error) {
	if len(ids) == 0 {
		return false, fmt.Errorf("no mod id provided, please specify at least one mod")
	}

	modified := false
	for _, id := range ids {
		if _, exists := Find(m, id); exists {
			// Already tracked, skip silently (idempotent)
			continue
		}
		m.Mods = append(m.Mods, models.Mod{ID: id, Optional: optional})
		modified = true
	}
	return modified, nil
}

// RemoveMods removes tracked mods by id. Returns true if m was modified.
func RemoveMods(m *models.Manifest, ids []string) (bool, error) {
	if len(ids) == 0 {
		return false, fmt.Errorf("no mod id provided, please specify at least one mod")
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	out := m.Mods[:0]
	removed := false
	for _, mod := range m.Mods {
		if _, hit := idSet[mod.ID]; hit {
			removed = true
			continue
		}
		out = append(out, mod)
	}

	if removed {
		m.Mods = out
	}
	return removed, nil
}
