package combat

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/schedule"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

// Speed-multiplier tuning for weapon-preparation stages.
const (
	reflexSpeedStep    = 0.015
	quickdrawSpeedStep = 0.08
	minSpeedMultiplier = 0.1
)

// SpeedMultiplier converts reflexes and quickdraw training into a
// duration multiplier for weapon-preparation stages. Sharp reflexes and
// quickdraw levels shorten preparation; the multiplier never drops below
// 0.1.
func SpeedMultiplier(c *character.Character) float64 {
	m := (1.0 - float64(c.ReflexesModifier())*reflexSpeedStep) *
		(1.0 - quickdrawSpeedStep*float64(c.SkillLevel(character.SkillQuickdraw)))
	if m < minSpeedMultiplier {
		m = minSpeedMultiplier
	}
	return m
}

// TransitionTicks returns how long the character spends in s before
// advancing. Preparation stages are scaled by the character's speed
// multiplier and take at least one tick; other stages run at the weapon's
// fixed pace.
func TransitionTicks(c *character.Character, s weapon.State) int64 {
	if !s.IsPreparation() {
		return s.Ticks
	}
	scaled := int64(math.Round(float64(s.Ticks) * SpeedMultiplier(c)))
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

// Readiness drives per-unit weapon state progression through scheduled
// WeaponTransition commands and tracks each unit's chosen hold state.
type Readiness struct {
	sched  *schedule.Scheduler
	burst  *BurstTracker
	logger *zap.Logger
	holds  map[int]string
}

// NewReadiness creates a Readiness manager.
//
// Precondition: sched, burst, and logger are non-nil.
func NewReadiness(sched *schedule.Scheduler, burst *BurstTracker, logger *zap.Logger) *Readiness {
	if sched == nil {
		panic("combat: NewReadiness: precondition violated: sched must not be nil")
	}
	if burst == nil {
		panic("combat: NewReadiness: precondition violated: burst must not be nil")
	}
	if logger == nil {
		panic("combat: NewReadiness: precondition violated: logger must not be nil")
	}
	return &Readiness{sched: sched, burst: burst, logger: logger, holds: make(map[int]string)}
}

// HoldFor returns the unit's chosen hold state, defaulting to aiming.
func (rd *Readiness) HoldFor(u *world.Unit) string {
	if s, ok := rd.holds[u.ID]; ok {
		return s
	}
	return weapon.StateAiming
}

// SetHold chooses the state the unit's weapon progression should stop at.
//
// Postcondition: on success, HoldFor(u) == state.
func (rd *Readiness) SetHold(u *world.Unit, state string) error {
	w := u.Character.CurrentWeapon()
	if w == nil {
		return fmt.Errorf("combat: Readiness.SetHold: unit %d carries no weapon", u.ID)
	}
	for _, s := range weapon.HoldStates(w) {
		if s.Name == state {
			rd.holds[u.ID] = state
			return nil
		}
	}
	return fmt.Errorf("combat: Readiness.SetHold: %q is not a hold state of %q", state, w.WeaponID())
}

// CycleHold advances the unit's hold state to the next legal hold in the
// weapon's graph, wrapping at the end, and returns the new state name.
func (rd *Readiness) CycleHold(u *world.Unit) (string, error) {
	w := u.Character.CurrentWeapon()
	if w == nil {
		return "", fmt.Errorf("combat: Readiness.CycleHold: unit %d carries no weapon", u.ID)
	}
	states := weapon.HoldStates(w)
	if len(states) == 0 {
		return "", fmt.Errorf("combat: Readiness.CycleHold: %q has no hold states", w.WeaponID())
	}
	cur := rd.HoldFor(u)
	idx := -1
	for i, s := range states {
		if s.Name == cur {
			idx = i
			break
		}
	}
	next := states[(idx+1)%len(states)].Name
	rd.holds[u.ID] = next
	return next, nil
}

// progressionTarget is the state ScheduleProgression advances toward: the
// unit's explicit hold if one is set, otherwise ready (melee_ready for a
// melee weapon).
func (rd *Readiness) progressionTarget(u *world.Unit, w *weapon.Weapon) string {
	if s, ok := rd.holds[u.ID]; ok {
		return s
	}
	if w.IsMelee() {
		return weapon.StateMeleeReady
	}
	return weapon.StateReady
}

// currentState resolves the unit's current weapon state against the
// weapon's graph, resetting to the initial state when the recorded name
// is stale (for example after switching weapons).
func (rd *Readiness) currentState(u *world.Unit, w *weapon.Weapon) weapon.State {
	if s, ok := w.StateNamed(u.Character.WeaponState); ok {
		return s
	}
	s := w.FirstState()
	u.Character.WeaponState = s.Name
	return s
}

// ScheduleProgression advances the unit's weapon one stage toward its
// hold target. Arriving at the target clears any hold override and stops.
// Progression never advances into firing, recovering, or reloading; those
// stages are entered by the attack sequence, not by readying.
func (rd *Readiness) ScheduleProgression(u *world.Unit, tick int64) {
	w := u.Character.CurrentWeapon()
	if w == nil {
		rd.logger.Warn("readiness progression for unarmed unit", zap.Int("unit", u.ID))
		return
	}
	cur := rd.currentState(u, w)
	target := rd.progressionTarget(u, w)
	if cur.Name == target {
		delete(rd.holds, u.ID)
		return
	}
	if cur.Next == "" {
		return
	}
	next, ok := w.StateNamed(cur.Next)
	if !ok || next.IsHoldExcluded() {
		return
	}
	rd.sched.Schedule(tick+TransitionTicks(u.Character, cur), u.ID, WeaponTransition{UnitID: u.ID, ToState: next.Name})
}

// ApplyTransition moves the unit's weapon into toState and continues the
// progression from there.
//
// Precondition: toState is defined by the unit's current weapon; the
// scheduler only carries transitions built from validated graphs.
func (rd *Readiness) ApplyTransition(u *world.Unit, toState string, tick int64) {
	w := u.Character.CurrentWeapon()
	if w == nil {
		rd.logger.Warn("weapon transition for unarmed unit", zap.Int("unit", u.ID), zap.String("state", toState))
		return
	}
	if _, ok := w.StateNamed(toState); !ok {
		panic(fmt.Sprintf("combat: Readiness.ApplyTransition: precondition violated: %q has no state %q", w.WeaponID(), toState))
	}
	u.Character.WeaponState = toState
	rd.logger.Debug("weapon state",
		zap.Int("unit", u.ID),
		zap.String("state", toState),
		zap.Int64("tick", tick),
	)
	rd.ScheduleProgression(u, tick)
}

// CeaseFire halts everything the unit has in flight: its scheduled
// events, its burst bookkeeping, and any hold override. A weapon caught
// in aiming, firing, or recovering snaps back to its aiming stage,
// keeping the target lock; holstered and readying weapons are left
// untouched.
func (rd *Readiness) CeaseFire(u *world.Unit, tick int64) {
	cancelled := rd.sched.CancelOwned(u.ID)
	rd.burst.Reset(u.ID)
	delete(rd.holds, u.ID)

	c := u.Character
	switch c.WeaponState {
	case weapon.StateAiming, weapon.StateFiring, weapon.StateRecovering:
		w := c.CurrentWeapon()
		if w == nil {
			break
		}
		if _, ok := w.StateNamed(weapon.StateAiming); ok {
			c.WeaponState = weapon.StateAiming
		} else if _, ok := w.StateNamed(weapon.StateMeleeReady); ok {
			c.WeaponState = weapon.StateMeleeReady
		}
	}

	rd.logger.Info("cease fire",
		zap.Int("unit", u.ID),
		zap.String("state", c.WeaponState),
		zap.Int("cancelled_events", cancelled),
		zap.Int64("tick", tick),
	)
}
