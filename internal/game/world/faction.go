package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Faction defines a side in the fight. Units of the same faction never
// target each other and propagate morale among themselves.
type Faction struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Color Color  `yaml:"color"`
}

// Validate checks that the Faction satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (f *Faction) Validate() error {
	var errs []error
	if f.ID < 0 {
		errs = append(errs, errors.New("ID must be >= 0"))
	}
	if f.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("faction validation failed: %v", errs)
	}
	return nil
}

// LoadFactions reads all YAML files from dir, parses each as a Faction,
// validates it, and returns the factions indexed by id.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid factions or the first encountered error.
func LoadFactions(dir string) (map[int]*Faction, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadFactions: cannot read directory %q: %w", dir, err)
	}

	factions := make(map[int]*Faction)
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadFactions: cannot read file %q: %w", path, err)
		}
		var f Faction
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("LoadFactions: cannot parse file %q: %w", path, err)
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("LoadFactions: invalid faction in %q: %w", path, err)
		}
		if _, exists := factions[f.ID]; exists {
			return nil, fmt.Errorf("LoadFactions: faction ID %d defined twice", f.ID)
		}
		factions[f.ID] = &f
	}
	return factions, nil
}
