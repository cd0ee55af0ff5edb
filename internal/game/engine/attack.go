package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/combat"
	"github.com/ashfall-games/skirmish/internal/game/schedule"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

// firingHighlightTicks is how long a shooter flashes after pulling the
// trigger.
const firingHighlightTicks = 10

// FireAt resolves a ranged shot from shooter to target at the given tick.
// The attack roll happens now; the outcome rides a scheduled impact that
// lands after the projectile's flight time. The impact is world-owned so
// that a round already in the air still arrives if the shooter goes down.
//
// Precondition: tick >= Now().
func (e *Engine) FireAt(shooterID, targetID int, tick int64) error {
	shooter, ok := e.field.ByID(shooterID)
	if !ok {
		return fmt.Errorf("engine: Engine.FireAt: no unit with id %d", shooterID)
	}
	sc := shooter.Character
	w := sc.Ranged
	if w == nil {
		return fmt.Errorf("engine: Engine.FireAt: unit %d (%s) carries no ranged weapon", shooterID, sc.Name)
	}
	if sc.IsIncapacitated() {
		return fmt.Errorf("engine: Engine.FireAt: unit %d (%s) is incapacitated", shooterID, sc.Name)
	}
	if sc.Hesitating {
		return fmt.Errorf("engine: Engine.FireAt: unit %d (%s) is hesitating", shooterID, sc.Name)
	}
	target, ok := e.field.ByID(targetID)
	if !ok {
		return fmt.Errorf("engine: Engine.FireAt: no unit with id %d", targetID)
	}

	distanceFeet := shooter.DistanceFeetTo(target)
	if distanceFeet > w.MaxRangeFeet {
		return fmt.Errorf("engine: Engine.FireAt: target %d is %.1f ft away, beyond the %.1f ft range of %q",
			targetID, distanceFeet, w.MaxRangeFeet, w.WeaponID())
	}

	sc.AttacksAttempted++
	sc.RangedAttacksAttempted++

	// The roll sees the burst state of earlier shots only; recording this
	// shot afterwards keeps the first round of a burst at full accuracy.
	hit := e.calc.DetermineRangedHit(shooter, target, w, distanceFeet)
	if w.SupportsBurst() || w.SupportsAutomatic() {
		e.burst.Record(shooter.ID, w.SupportsAutomatic())
	}
	sc.MarkAttacked(target.ID)

	e.applyFiringHighlight(shooter, tick)

	impactTick := tick + travelTicks(distanceFeet, w)
	e.sched.Schedule(impactTick, schedule.WorldOwner, combat.RangedImpact{
		ShooterID: shooter.ID,
		TargetID:  target.ID,
		WeaponID:  w.WeaponID(),
		Hit:       hit,
	})

	e.logger.Info("shot fired",
		zap.Int("shooter", shooter.ID),
		zap.Int("target", target.ID),
		zap.String("weapon", w.WeaponID()),
		zap.Float64("distance_feet", distanceFeet),
		zap.Bool("hit", hit.Hit),
		zap.Int64("tick", tick),
		zap.Int64("impact_tick", impactTick),
	)
	return nil
}

// travelTicks converts a projectile's flight over distanceFeet to whole
// ticks, rounded to nearest.
func travelTicks(distanceFeet float64, w *weapon.Weapon) int64 {
	return int64(math.Round(distanceFeet / w.VelocityFPS * world.TicksPerSecond))
}

// MeleeAt swings attacker's melee weapon at target at the given tick. The
// strike resolves through a scheduled impact on that tick; the attack roll
// itself happens at resolution time.
//
// Precondition: tick >= Now().
func (e *Engine) MeleeAt(attackerID, targetID int, tick int64) error {
	attacker, ok := e.field.ByID(attackerID)
	if !ok {
		return fmt.Errorf("engine: Engine.MeleeAt: no unit with id %d", attackerID)
	}
	ac := attacker.Character
	w := ac.Melee
	if w == nil {
		return fmt.Errorf("engine: Engine.MeleeAt: unit %d (%s) carries no melee weapon", attackerID, ac.Name)
	}
	if ac.IsIncapacitated() {
		return fmt.Errorf("engine: Engine.MeleeAt: unit %d (%s) is incapacitated", attackerID, ac.Name)
	}
	if ac.Hesitating {
		return fmt.Errorf("engine: Engine.MeleeAt: unit %d (%s) is hesitating", attackerID, ac.Name)
	}
	target, ok := e.field.ByID(targetID)
	if !ok {
		return fmt.Errorf("engine: Engine.MeleeAt: no unit with id %d", targetID)
	}
	if !combat.InMeleeRange(attacker, target, w) {
		return fmt.Errorf("engine: Engine.MeleeAt: target %d is %.1f ft away, beyond the %.1f ft reach of %q",
			targetID, attacker.DistanceFeetTo(target), w.TotalReachFeet(), w.WeaponID())
	}

	e.sched.Schedule(tick, schedule.WorldOwner, combat.MeleeImpact{
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		WeaponID:   w.WeaponID(),
	})

	e.logger.Info("melee attack committed",
		zap.Int("attacker", attacker.ID),
		zap.Int("target", target.ID),
		zap.String("weapon", w.WeaponID()),
		zap.Int64("tick", tick),
	)
	return nil
}

// applyFiringHighlight flashes the shooter and schedules the clear. The
// latch keeps overlapping shots from stacking clear events.
func (e *Engine) applyFiringHighlight(shooter *world.Unit, tick int64) {
	if shooter.FiringHighlighted {
		return
	}
	shooter.FiringHighlighted = true
	e.sched.Schedule(tick+firingHighlightTicks, schedule.WorldOwner, schedule.ClearFiringHighlight{UnitID: shooter.ID})
}
