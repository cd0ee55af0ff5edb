package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/dice"
	"github.com/ashfall-games/skirmish/internal/game/schedule"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

const (
	// hitHighlightTicks is how long a struck unit flashes before its
	// color reverts.
	hitHighlightTicks = 15
	// allyMoraleRadius is how far (in pixels) the shock of seeing an
	// ally wounded carries. 30 feet.
	allyMoraleRadius = 210.0
)

// Behavior is the subset of the behavior controller the combat package
// drives: wound application with its hesitation follow-ups, morale checks,
// and the character queries the calculators need. A local interface keeps
// the package testable with doubles; behavior.Controller satisfies it.
type Behavior interface {
	ApplyWound(c *character.Character, w character.Wound, tick int64, sched *schedule.Scheduler, ownerID int)
	BraveryCheck(c *character.Character, tick int64, sched *schedule.Scheduler, ownerID int, reason string)
	BraveryPenalty(c *character.Character) int
	IsIncapacitated(c *character.Character) bool
	SkillLevel(c *character.Character, name string) int
}

// Resolver turns already-rolled hits into wounds, counters, morale
// checks, and incapacitations, and owns the sub-resolutions that roll
// their own hits: stray shots and melee strikes.
type Resolver struct {
	field    *world.Field
	sched    *schedule.Scheduler
	behavior Behavior
	burst    *BurstTracker
	src      dice.Source
	logger   *zap.Logger
}

// NewResolver creates a Resolver over the given field.
//
// Precondition: all arguments are non-nil.
func NewResolver(field *world.Field, sched *schedule.Scheduler, behavior Behavior, burst *BurstTracker, src dice.Source, logger *zap.Logger) *Resolver {
	if field == nil {
		panic("combat: NewResolver: precondition violated: field must not be nil")
	}
	if sched == nil {
		panic("combat: NewResolver: precondition violated: sched must not be nil")
	}
	if behavior == nil {
		panic("combat: NewResolver: precondition violated: behavior must not be nil")
	}
	if burst == nil {
		panic("combat: NewResolver: precondition violated: burst must not be nil")
	}
	if src == nil {
		panic("combat: NewResolver: precondition violated: src must not be nil")
	}
	if logger == nil {
		panic("combat: NewResolver: precondition violated: logger must not be nil")
	}
	return &Resolver{field: field, sched: sched, behavior: behavior, burst: burst, src: src, logger: logger}
}

// ResolveImpact applies the outcome of a primary attack at impactTick. A
// ranged miss continues as a possible stray shot; a melee miss was
// terminal upstream and never reaches here.
//
// Precondition: shooter, target, and w are non-nil.
func (r *Resolver) ResolveImpact(shooter, target *world.Unit, w *weapon.Weapon, impactTick int64, hit HitResult) {
	if !hit.Hit {
		r.logger.Info("attack missed",
			zap.String("attacker", shooter.Character.Name),
			zap.String("target", target.Character.Name),
			zap.String("weapon", w.WoundDescription()),
			zap.Int64("tick", impactTick),
		)
		if w.Class == weapon.ClassRanged {
			r.HandleStrayShot(shooter, target, w, impactTick)
		}
		return
	}
	r.applyHit(shooter, target, w, impactTick, hit, w.WoundDescription())
}

// applyHit performs the shared hit bookkeeping for primary, melee, and
// stray hits: shooter tallies, wound application, morale checks for the
// target and nearby allies, the incapacitation check, and the hit
// highlight. description is the wound phrase recorded and quoted in
// morale reasons; stray hits pass a tagged variant.
func (r *Resolver) applyHit(shooter, target *world.Unit, w *weapon.Weapon, impactTick int64, hit HitResult, description string) {
	sc := shooter.Character
	tc := target.Character

	sc.AttacksSuccessful++
	switch w.Class {
	case weapon.ClassRanged:
		sc.RangedAttacksSuccessful++
	case weapon.ClassMelee:
		sc.MeleeAttacksSuccessful++
	default:
		panic(fmt.Sprintf("combat: Resolver.applyHit: unknown class %q", w.Class))
	}
	sc.RecordWoundInflicted(hit.Severity)
	if hit.Location == character.PartHead {
		sc.HeadshotsAttempted++
		sc.HeadshotsSuccessful++
	}

	wound := character.Wound{
		Location:   hit.Location,
		Severity:   hit.Severity,
		Damage:     hit.Damage,
		WeaponName: description,
		WeaponID:   w.WeaponID(),
		Cause:      description,
	}
	r.behavior.ApplyWound(tc, wound, impactTick, r.sched, target.ID)

	r.logger.Info("hit resolved",
		zap.String("attacker", sc.Name),
		zap.String("target", tc.Name),
		zap.String("weapon", description),
		zap.String("location", hit.Location.String()),
		zap.String("severity", hit.Severity.String()),
		zap.Int("damage", hit.Damage),
		zap.Int("health", tc.CurrentHealth),
		zap.Int64("tick", impactTick),
	)

	r.behavior.BraveryCheck(tc, impactTick, r.sched, target.ID, "wounded by "+description)
	r.triggerAllyMoraleChecks(target, impactTick, description)

	if r.behavior.IsIncapacitated(tc) {
		sc.TargetsIncapacitated++
		if hit.Location == character.PartHead {
			sc.HeadshotIncapacitations++
		}
		tc.BaseMovementSpeed = 0
		tc.Movement = character.MoveStationary
		r.burst.Reset(target.ID)
		cancelled := r.sched.CancelOwned(target.ID)
		r.logger.Info("incapacitated",
			zap.String("target", tc.Name),
			zap.String("cause", description),
			zap.Int("cancelled_events", cancelled),
		)
	}

	r.applyHitHighlight(target, impactTick)
}

// triggerAllyMoraleChecks runs a morale check on every conscious ally
// within allyMoraleRadius of the wounded unit. The radius comparison is
// inclusive.
func (r *Resolver) triggerAllyMoraleChecks(wounded *world.Unit, tick int64, description string) {
	for _, u := range r.field.Units() {
		if u.ID == wounded.ID {
			continue
		}
		if r.behavior.IsIncapacitated(u.Character) {
			continue
		}
		if u.Faction() != wounded.Faction() {
			continue
		}
		if u.DistanceTo(wounded) <= allyMoraleRadius {
			r.behavior.BraveryCheck(u.Character, tick, r.sched, u.ID, "ally "+wounded.Character.Name+" hit by "+description)
		}
	}
}

// applyHitHighlight flashes the struck unit and schedules the revert. A
// unit already flashing keeps its existing revert event.
func (r *Resolver) applyHitHighlight(target *world.Unit, impactTick int64) {
	if target.HitHighlighted {
		return
	}
	target.HitHighlighted = true
	target.Color = world.ColorYellow
	r.sched.Schedule(impactTick+hitHighlightTicks, schedule.WorldOwner, schedule.ClearHitHighlight{UnitID: target.ID})
}
