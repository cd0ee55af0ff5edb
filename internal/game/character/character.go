// Package character defines the combatant domain model: stats and their
// modifier curve, wounds, body positions, movement and aiming states, skill
// levels, and the running combat tallies the resolver updates.
package character

import (
	"fmt"

	"github.com/ashfall-games/skirmish/internal/game/weapon"
)

// Skill names used by weapon definitions and the hit calculators.
const (
	SkillPistol        = "pistol"
	SkillRifle         = "rifle"
	SkillSubmachinegun = "submachinegun"
	SkillKnife         = "knife"
	SkillSabre         = "sabre"
	SkillUnarmed       = "unarmed"
	SkillQuickdraw     = "quickdraw"
	SkillMedicine      = "medicine"
)

// SkillBonusPerLevel is the flat accuracy bonus each skill level grants.
const SkillBonusPerLevel = 5

// Character is a combatant's full state. Stats run 1-100 with 50 as
// average. Mutation of wounds, health, and morale bookkeeping goes through
// the behavior controller; the combat resolver only reads.
type Character struct {
	ID      int
	Name    string
	Faction int

	Dexterity int
	Strength  int
	Reflexes  int
	Coolness  int

	Health        int
	CurrentHealth int

	Ranged    *weapon.Weapon
	Melee     *weapon.Weapon
	MeleeMode bool // attacking with the melee weapon when true

	WeaponState       string // current readiness-state name
	Position          PositionState
	Movement          MovementType
	Aiming            AimingSpeed
	BaseMovementSpeed float64 // pixels per tick; zeroed on incapacitation

	Skills map[string]int
	Wounds []Wound

	// Attack tallies.
	AttacksAttempted        int
	AttacksSuccessful       int
	RangedAttacksAttempted  int
	RangedAttacksSuccessful int
	MeleeAttacksAttempted   int
	MeleeAttacksSuccessful  int

	// Wounds inflicted on others, by severity.
	ScratchesInflicted int
	LightInflicted     int
	SeriousInflicted   int
	CriticalInflicted  int

	HeadshotsAttempted      int
	HeadshotsSuccessful     int
	HeadshotIncapacitations int
	TargetsIncapacitated    int
	WoundsReceived          int

	// Morale bookkeeping, mutated only by the behavior controller.
	BraveryFailures   int
	BraveryPenaltyEnd int64
	Hesitating        bool
	HesitationEnd     int64

	attacked map[int]bool
}

// New returns a Character with average stats, full health, and walking
// speed. Callers adjust fields directly after construction.
func New(id int, name string, faction int) *Character {
	return &Character{
		ID:                id,
		Name:              name,
		Faction:           faction,
		Dexterity:         50,
		Strength:          50,
		Reflexes:          50,
		Coolness:          50,
		Health:            100,
		CurrentHealth:     100,
		BaseMovementSpeed: 42.0 / 60.0, // 6 ft/s walking pace
		Skills:            make(map[string]int),
	}
}

// DexterityModifier returns the modifier for the character's dexterity.
func (c *Character) DexterityModifier() int {
	return StatModifier(c.Dexterity)
}

// ReflexesModifier returns the modifier for the character's reflexes.
func (c *Character) ReflexesModifier() int {
	return StatModifier(c.Reflexes)
}

// CoolnessModifier returns the modifier for the character's coolness.
func (c *Character) CoolnessModifier() int {
	return StatModifier(c.Coolness)
}

// SkillLevel returns the character's level in the named skill, 0 when
// untrained.
func (c *Character) SkillLevel(name string) int {
	return c.Skills[name]
}

// CurrentWeapon returns the weapon the character is presently fighting
// with: the melee weapon in melee mode, otherwise the ranged weapon. May be
// nil if the character carries nothing of that class.
func (c *Character) CurrentWeapon() *weapon.Weapon {
	if c.MeleeMode {
		return c.Melee
	}
	return c.Ranged
}

// IsIncapacitated reports whether the character is out of the fight: at or
// below zero health, or carrying any critical wound.
func (c *Character) IsIncapacitated() bool {
	if c.CurrentHealth <= 0 {
		return true
	}
	for _, w := range c.Wounds {
		if w.Severity == WoundCritical {
			return true
		}
	}
	return false
}

// WoundPenalty returns the accumulated accuracy cost of the character's
// wounds: 5 per wound of light or worse severity. Scratches do not impair.
func (c *Character) WoundPenalty() int {
	penalty := 0
	for _, w := range c.Wounds {
		if w.Severity >= WoundLight {
			penalty += 5
		}
	}
	return penalty
}

// FirstAttackOn reports whether the character has not yet attacked the
// given target. The first attack against any particular target carries a
// familiarization penalty.
func (c *Character) FirstAttackOn(targetID int) bool {
	return !c.attacked[targetID]
}

// MarkAttacked records that the character has attacked the given target.
//
// Postcondition: FirstAttackOn(targetID) == false.
func (c *Character) MarkAttacked(targetID int) {
	if c.attacked == nil {
		c.attacked = make(map[int]bool)
	}
	c.attacked[targetID] = true
}

// RecordWoundInflicted bumps the attacker-side tally for a wound of the
// given severity.
//
// Precondition: severity is a known WoundSeverity.
func (c *Character) RecordWoundInflicted(severity WoundSeverity) {
	switch severity {
	case WoundScratch:
		c.ScratchesInflicted++
	case WoundLight:
		c.LightInflicted++
	case WoundSerious:
		c.SeriousInflicted++
	case WoundCritical:
		c.CriticalInflicted++
	default:
		panic(fmt.Sprintf("character: Character.RecordWoundInflicted: unknown severity %d", int(severity)))
	}
}
