package models

// Mod is one tracked registry project in mods.yml. ID is the registry's
// project id or slug; Name is an optional display label for tables.
type Mod struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

type Manifest struct {
	Mods []Mod `yaml:"mods"`
}

// DisplayName returns Name when set, otherwise the ID.
func (m *Mod) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}
