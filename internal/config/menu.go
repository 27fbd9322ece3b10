package config

// MenuEntry represents a Hugo menu item. Menu names the menu it belongs to;
// Parent refers to another entry's Identifier and is empty at the top level.
type MenuEntry struct {
	Menu       string `yaml:"-" json:"-"`
	Identifier string `yaml:"identifier" json:"identifier"`
	Parent     string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Name       string `yaml:"name" json:"name"`
	URL        string `yaml:"url,omitempty" json:"url,omitempty"`
	Weight     int    `yaml:"weight,omitempty" json:"weight,omitempty"`
}
