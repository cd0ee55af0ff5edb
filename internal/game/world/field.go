package world

import "fmt"

// Field holds every unit on the battlefield in placement order. Iteration
// order is stable, which keeps weighted stray-victim selection
// deterministic under a seeded dice source. The field is owned by the
// engine loop and is not safe for concurrent use.
type Field struct {
	units []*Unit
	byID  map[int]*Unit
}

// NewField returns an empty Field.
//
// Postcondition: all internal maps are initialised.
func NewField() *Field {
	return &Field{byID: make(map[int]*Unit)}
}

// Add places u on the field.
//
// Precondition:  u must not be nil.
// Postcondition: ByID(u.ID) returns u; returns error if u.ID already placed.
func (f *Field) Add(u *Unit) error {
	if u == nil {
		panic("world: Field.Add: unit must not be nil")
	}
	if _, exists := f.byID[u.ID]; exists {
		return fmt.Errorf("world: Field.Add: unit ID %d already placed", u.ID)
	}
	f.units = append(f.units, u)
	f.byID[u.ID] = u
	return nil
}

// ByID returns the unit with the given id.
//
// Postcondition: ok is true iff the id is placed.
func (f *Field) ByID(id int) (*Unit, bool) {
	u, ok := f.byID[id]
	return u, ok
}

// Units returns the units in placement order. Callers must not mutate the
// slice.
func (f *Field) Units() []*Unit {
	return f.units
}

// Len returns the number of placed units.
func (f *Field) Len() int {
	return len(f.units)
}
