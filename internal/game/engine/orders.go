package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

// Spawn creates a unit for the named faction at (x, y) world pixels and
// places it on the field. rangedID and meleeID name weapons from the
// registry; either may be empty for a unit that does not carry that kind.
func (e *Engine) Spawn(name string, factionID int, x, y float64, rangedID, meleeID string) (*world.Unit, error) {
	f, ok := e.factions[factionID]
	if !ok {
		return nil, fmt.Errorf("engine: Engine.Spawn: no faction with id %d", factionID)
	}

	c := character.New(e.nextID, name, factionID)
	if rangedID != "" {
		w, err := e.weaponOfClass(rangedID, weapon.ClassRanged)
		if err != nil {
			return nil, fmt.Errorf("engine: Engine.Spawn: %w", err)
		}
		c.Ranged = w
	}
	if meleeID != "" {
		w, err := e.weaponOfClass(meleeID, weapon.ClassMelee)
		if err != nil {
			return nil, fmt.Errorf("engine: Engine.Spawn: %w", err)
		}
		c.Melee = w
	}
	if c.Ranged == nil && c.Melee != nil {
		c.MeleeMode = true
	}
	if cw := c.CurrentWeapon(); cw != nil {
		c.WeaponState = cw.InitialState
	}

	u := world.NewUnit(e.nextID, c, x, y, f.Color)
	if err := e.field.Add(u); err != nil {
		return nil, fmt.Errorf("engine: Engine.Spawn: %w", err)
	}
	e.nextID++

	e.logger.Info("unit spawned",
		zap.Int("unit", u.ID),
		zap.String("name", name),
		zap.String("faction", f.Name),
		zap.Float64("x", x),
		zap.Float64("y", y),
	)
	return u, nil
}

// weaponOfClass fetches a registry weapon and checks its variant.
func (e *Engine) weaponOfClass(id string, class weapon.Class) (*weapon.Weapon, error) {
	w := e.weapons.Weapon(id)
	if w == nil {
		return nil, fmt.Errorf("no weapon with id %q", id)
	}
	if w.Class != class {
		return nil, fmt.Errorf("weapon %q is %s, not %s", id, w.Class, class)
	}
	return w, nil
}

// SetStance sets a unit's body position.
func (e *Engine) SetStance(unitID int, p character.PositionState) error {
	u, ok := e.field.ByID(unitID)
	if !ok {
		return fmt.Errorf("engine: Engine.SetStance: no unit with id %d", unitID)
	}
	u.Character.Position = p
	return nil
}

// SetMovement sets a unit's movement rate.
func (e *Engine) SetMovement(unitID int, m character.MovementType) error {
	u, ok := e.field.ByID(unitID)
	if !ok {
		return fmt.Errorf("engine: Engine.SetMovement: no unit with id %d", unitID)
	}
	u.Character.Movement = m
	return nil
}

// SetAiming sets how deliberately a unit lines up its attacks.
func (e *Engine) SetAiming(unitID int, a character.AimingSpeed) error {
	u, ok := e.field.ByID(unitID)
	if !ok {
		return fmt.Errorf("engine: Engine.SetAiming: no unit with id %d", unitID)
	}
	u.Character.Aiming = a
	return nil
}

// ReadyWeapon starts walking a unit's weapon toward its hold state,
// scheduling the first transition from the current tick.
func (e *Engine) ReadyWeapon(unitID int) error {
	u, ok := e.field.ByID(unitID)
	if !ok {
		return fmt.Errorf("engine: Engine.ReadyWeapon: no unit with id %d", unitID)
	}
	e.readiness.ScheduleProgression(u, e.clock.Now())
	return nil
}

// SetHoldState pins the state a unit's weapon readies to.
func (e *Engine) SetHoldState(unitID int, state string) error {
	u, ok := e.field.ByID(unitID)
	if !ok {
		return fmt.Errorf("engine: Engine.SetHoldState: no unit with id %d", unitID)
	}
	return e.readiness.SetHold(u, state)
}

// CycleHoldState advances a unit's hold state to the next holdable state
// in its weapon's action graph and returns the new hold.
func (e *Engine) CycleHoldState(unitID int) (string, error) {
	u, ok := e.field.ByID(unitID)
	if !ok {
		return "", fmt.Errorf("engine: Engine.CycleHoldState: no unit with id %d", unitID)
	}
	return e.readiness.CycleHold(u)
}

// CeaseFire stands a unit down: pending attacks are cancelled and a weapon
// caught mid-action snaps back to its ready state.
func (e *Engine) CeaseFire(unitID int) error {
	u, ok := e.field.ByID(unitID)
	if !ok {
		return fmt.Errorf("engine: Engine.CeaseFire: no unit with id %d", unitID)
	}
	e.readiness.CeaseFire(u, e.clock.Now())
	return nil
}
