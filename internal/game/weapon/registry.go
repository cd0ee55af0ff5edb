package weapon

import "fmt"

// Registry holds all loaded weapon definitions indexed by ID.
type Registry struct {
	weapons map[string]*Weapon
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{weapons: make(map[string]*Weapon)}
}

// Register adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns w; returns error if w.ID already registered.
func (r *Registry) Register(w *Weapon) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("weapon: Registry.Register: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// Weapon returns the definition for the given id, or nil if not found.
func (r *Registry) Weapon(id string) *Weapon {
	return r.weapons[id]
}

// All returns all registered weapons in unspecified order.
//
// Postcondition: len(result) == number of registered weapons.
func (r *Registry) All() []*Weapon {
	out := make([]*Weapon, 0, len(r.weapons))
	for _, w := range r.weapons {
		out = append(out, w)
	}
	return out
}

// LoadRegistry loads every weapon definition in dir into a fresh Registry.
//
// Postcondition: returns a Registry containing every valid definition, or
// an error on the first unreadable, unparsable, invalid, or duplicate entry.
func LoadRegistry(dir string) (*Registry, error) {
	weapons, err := LoadWeapons(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, w := range weapons {
		if err := r.Register(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}
