// Package weapon defines the static weapon data the combat engine consumes:
// a single tagged Weapon type covering ranged and melee variants, the named
// readiness-state graph each weapon carries, and the YAML loader and
// registry that bring definitions in from content files.
package weapon

import (
	"errors"
	"fmt"
)

// DefaultID is recorded on wounds when a weapon carries no id of its own.
// Resolution never fails on an unknown weapon identity.
const DefaultID = "wpn_unknown"

// Class tags the two weapon variants. Behavior that differs by variant
// switches on Class exhaustively; an unknown class is a programming error.
type Class string

const (
	// ClassRanged weapons fire projectiles with travel time.
	ClassRanged Class = "ranged"
	// ClassMelee weapons strike adjacent targets with no travel time.
	ClassMelee Class = "melee"
)

// FiringMode represents the firing mode of a ranged weapon.
type FiringMode string

const (
	// FiringModeSingle fires one round per trigger pull.
	FiringModeSingle FiringMode = "single"
	// FiringModeBurst fires a fixed burst per trigger pull.
	FiringModeBurst FiringMode = "burst"
	// FiringModeAutomatic fires continuously while the trigger is held.
	FiringModeAutomatic FiringMode = "automatic"
)

// MeleeKind classifies melee weapons by reach profile.
type MeleeKind string

const (
	MeleeKindUnarmed   MeleeKind = "unarmed"
	MeleeKindShort     MeleeKind = "short"
	MeleeKindMedium    MeleeKind = "medium"
	MeleeKindLong      MeleeKind = "long"
	MeleeKindTwoWeapon MeleeKind = "two_weapon"
)

// baseReachFeet is the arm's-length reach every melee attacker has before
// the weapon's own length is added.
const baseReachFeet = 4.0

// Weapon defines the static properties of a weapon loaded from YAML. One
// struct covers both variants; Class selects which variant fields apply.
type Weapon struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Class        Class   `yaml:"class"`
	Damage       int     `yaml:"damage"`
	Accuracy     int     `yaml:"accuracy"`
	CombatSkill  string  `yaml:"combat_skill"` // skill name granting the level bonus; empty = none
	LengthFeet   float64 `yaml:"length_feet"`
	InitialState string  `yaml:"initial_state"`
	States       []State `yaml:"states"`

	// Ranged variant fields.
	MaxRangeFeet float64      `yaml:"max_range_feet"`
	VelocityFPS  float64      `yaml:"velocity_fps"`
	Projectile   string       `yaml:"projectile"`
	AmmoCapacity int          `yaml:"ammo_capacity"`
	ReloadTicks  int64        `yaml:"reload_ticks"`
	FiringModes  []FiringMode `yaml:"firing_modes"`
	CyclicRate   int64        `yaml:"cyclic_rate"`
	BurstSize    int          `yaml:"burst_size"`

	// Melee variant fields.
	MeleeKind     MeleeKind `yaml:"melee_kind"`
	DefendScore   int       `yaml:"defend_score"`
	AttackTicks   int64     `yaml:"attack_ticks"`
	CooldownTicks int64     `yaml:"cooldown_ticks"`
}

// IsMelee reports whether the weapon is the melee variant.
func (w *Weapon) IsMelee() bool {
	return w.Class == ClassMelee
}

// WeaponID returns the weapon's id, falling back to DefaultID when the
// definition carries none.
//
// Postcondition: the result is non-empty.
func (w *Weapon) WeaponID() string {
	if w.ID == "" {
		return DefaultID
	}
	return w.ID
}

// WoundDescription returns the phrase recorded on wounds this weapon
// inflicts: the projectile name for ranged weapons, the weapon name for
// melee.
//
// Precondition: Class is a known variant.
func (w *Weapon) WoundDescription() string {
	switch w.Class {
	case ClassRanged:
		return w.Projectile
	case ClassMelee:
		return w.Name
	default:
		panic(fmt.Sprintf("weapon: Weapon.WoundDescription: unknown class %q", w.Class))
	}
}

// TotalReachFeet returns the full striking reach of a melee weapon: arm's
// length plus the weapon's own length.
//
// Precondition: Class == ClassMelee.
func (w *Weapon) TotalReachFeet() float64 {
	if w.Class != ClassMelee {
		panic(fmt.Sprintf("weapon: Weapon.TotalReachFeet: precondition violated: %q is not a melee weapon", w.WeaponID()))
	}
	return baseReachFeet + w.LengthFeet
}

// SupportsBurst reports whether the weapon supports burst fire.
func (w *Weapon) SupportsBurst() bool {
	for _, m := range w.FiringModes {
		if m == FiringModeBurst {
			return true
		}
	}
	return false
}

// SupportsAutomatic reports whether the weapon supports automatic fire.
func (w *Weapon) SupportsAutomatic() bool {
	for _, m := range w.FiringModes {
		if m == FiringModeAutomatic {
			return true
		}
	}
	return false
}

// StateNamed returns the readiness state with the given name.
//
// Postcondition: ok is true iff the weapon's graph defines the state.
func (w *Weapon) StateNamed(name string) (State, bool) {
	for _, s := range w.States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

// FirstState returns the state named by InitialState.
//
// Precondition: Validate has passed, so the initial state resolves.
func (w *Weapon) FirstState() State {
	s, ok := w.StateNamed(w.InitialState)
	if !ok {
		panic(fmt.Sprintf("weapon: Weapon.FirstState: %q has no state %q", w.WeaponID(), w.InitialState))
	}
	return s
}

// Validate checks that the Weapon satisfies its invariants, shared and
// variant-specific.
//
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *Weapon) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if w.Damage <= 0 {
		errs = append(errs, errors.New("Damage must be > 0"))
	}
	if len(w.States) == 0 {
		errs = append(errs, errors.New("States must not be empty"))
	}
	if _, ok := w.StateNamed(w.InitialState); !ok {
		errs = append(errs, fmt.Errorf("InitialState %q is not a defined state", w.InitialState))
	}
	for _, s := range w.States {
		if s.Next == "" {
			continue
		}
		if _, ok := w.StateNamed(s.Next); !ok {
			errs = append(errs, fmt.Errorf("state %q advances to undefined state %q", s.Name, s.Next))
		}
	}

	switch w.Class {
	case ClassRanged:
		if w.MaxRangeFeet <= 0 {
			errs = append(errs, errors.New("ranged MaxRangeFeet must be > 0"))
		}
		if w.VelocityFPS <= 0 {
			errs = append(errs, errors.New("ranged VelocityFPS must be > 0"))
		}
		if w.Projectile == "" {
			errs = append(errs, errors.New("ranged Projectile must not be empty"))
		}
		if w.AmmoCapacity <= 0 {
			errs = append(errs, errors.New("ranged AmmoCapacity must be > 0"))
		}
		if w.SupportsBurst() && w.BurstSize <= 0 {
			errs = append(errs, errors.New("burst-capable BurstSize must be > 0"))
		}
		if w.SupportsAutomatic() && w.CyclicRate <= 0 {
			errs = append(errs, errors.New("automatic-capable CyclicRate must be > 0"))
		}
	case ClassMelee:
		if w.MeleeKind == "" {
			errs = append(errs, errors.New("melee MeleeKind must not be empty"))
		}
		if w.LengthFeet < 0 {
			errs = append(errs, errors.New("melee LengthFeet must be >= 0"))
		}
		if w.AttackTicks <= 0 {
			errs = append(errs, errors.New("melee AttackTicks must be > 0"))
		}
		if w.CooldownTicks < 0 {
			errs = append(errs, errors.New("melee CooldownTicks must be >= 0"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown class %q", w.Class))
	}

	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}
