// Package behavior implements the character-behavior side of combat: wound
// application, hesitation, and bravery checks. The combat resolver drives
// it through a narrow interface so the reaction rules stay replaceable in
// tests.
package behavior

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/dice"
	"github.com/ashfall-games/skirmish/internal/game/schedule"
)

const (
	// braveryCheckBase is the roll target before the coolness modifier.
	braveryCheckBase = 50
	// braveryPenaltyTicks is how long a failed check weighs on accuracy.
	braveryPenaltyTicks = 180
	// braveryPenaltyPerFailure is the accuracy cost of each accumulated
	// failure.
	braveryPenaltyPerFailure = 10

	hesitationLightTicks  = 15
	hesitationSevereTicks = 60
)

// Controller owns the wound-reaction rules. All mutation of character
// wounds, health, and morale bookkeeping funnels through it.
type Controller struct {
	src    dice.Source
	logger *zap.Logger
}

// NewController creates a Controller rolling on src and logging to logger.
//
// Precondition: src and logger must be non-nil.
func NewController(src dice.Source, logger *zap.Logger) *Controller {
	if src == nil {
		panic("behavior: NewController: src must not be nil")
	}
	if logger == nil {
		panic("behavior: NewController: logger must not be nil")
	}
	return &Controller{src: src, logger: logger}
}

// ApplyWound records w on c, subtracts its damage from current health, and
// triggers hesitation unless the wound just incapacitated the character.
// ownerID is the scheduler owner for any follow-up events, normally the
// wounded unit's id.
//
// Postcondition: len(c.Wounds) and c.WoundsReceived grow by one;
// c.CurrentHealth drops by w.Damage.
func (ctl *Controller) ApplyWound(c *character.Character, w character.Wound, tick int64, sched *schedule.Scheduler, ownerID int) {
	c.Wounds = append(c.Wounds, w)
	c.WoundsReceived++
	c.CurrentHealth -= w.Damage

	ctl.logger.Debug("wound applied",
		zap.String("name", c.Name),
		zap.String("location", w.Location.String()),
		zap.String("severity", w.Severity.String()),
		zap.Int("damage", w.Damage),
		zap.Int("health", c.CurrentHealth),
		zap.Int64("tick", tick),
	)

	if c.IsIncapacitated() {
		return
	}
	ctl.triggerHesitation(c, w.Severity, tick, sched, ownerID)
}

// triggerHesitation pauses a freshly wounded character. A scratch causes no
// hesitation; a light wound stops them briefly, worse wounds longer. A
// character already hesitating has the window extended, never shortened.
func (ctl *Controller) triggerHesitation(c *character.Character, severity character.WoundSeverity, tick int64, sched *schedule.Scheduler, ownerID int) {
	var duration int64
	switch severity {
	case character.WoundScratch:
		return
	case character.WoundLight:
		duration = hesitationLightTicks
	case character.WoundSerious, character.WoundCritical:
		duration = hesitationSevereTicks
	default:
		panic(fmt.Sprintf("behavior: Controller.triggerHesitation: unknown severity %d", int(severity)))
	}

	end := tick + duration
	if c.Hesitating {
		if end <= c.HesitationEnd {
			return
		}
		c.HesitationEnd = end
		sched.Schedule(end, ownerID, HesitationEnd{UnitID: c.ID})
		return
	}

	c.Hesitating = true
	c.HesitationEnd = end
	// Whatever the character was doing is abandoned; the flinch drops any
	// queued actions.
	cancelled := sched.CancelOwned(ownerID)
	sched.Schedule(end, ownerID, HesitationEnd{UnitID: c.ID})

	ctl.logger.Debug("hesitation triggered",
		zap.String("name", c.Name),
		zap.String("severity", severity.String()),
		zap.Int64("until", end),
		zap.Int("actions_dropped", cancelled),
	)
}

// OnHesitationEnd handles a HesitationEnd command. Ends scheduled before a
// later extension are stale and ignored.
func (ctl *Controller) OnHesitationEnd(c *character.Character, tick int64) {
	if !c.Hesitating || tick < c.HesitationEnd {
		return
	}
	c.Hesitating = false
	ctl.logger.Debug("hesitation ended",
		zap.String("name", c.Name),
		zap.Int64("tick", tick),
	)
}

// BraveryCheck rolls nerve for c: target 50 plus the coolness modifier, d100,
// failing on any roll at or above the target. A failure costs accuracy for
// the next three seconds and schedules its own recovery. Incapacitated
// characters are never checked.
func (ctl *Controller) BraveryCheck(c *character.Character, tick int64, sched *schedule.Scheduler, ownerID int, reason string) {
	if c.IsIncapacitated() {
		return
	}
	target := braveryCheckBase + c.CoolnessModifier()
	roll := dice.D100(ctl.src)
	if roll < target {
		ctl.logger.Debug("bravery check passed",
			zap.String("name", c.Name),
			zap.Int("roll", roll),
			zap.Int("target", target),
			zap.String("reason", reason),
		)
		return
	}

	c.BraveryFailures++
	c.BraveryPenaltyEnd = tick + braveryPenaltyTicks
	sched.Schedule(tick+braveryPenaltyTicks, ownerID, BraveryRecovery{UnitID: c.ID})

	ctl.logger.Info("bravery check failed",
		zap.String("name", c.Name),
		zap.Int("roll", roll),
		zap.Int("target", target),
		zap.Int("failures", c.BraveryFailures),
		zap.String("reason", reason),
	)
}

// OnBraveryRecovery handles a BraveryRecovery command, shedding one
// accumulated failure.
//
// Postcondition: c.BraveryFailures never drops below zero.
func (ctl *Controller) OnBraveryRecovery(c *character.Character) {
	if c.BraveryFailures > 0 {
		c.BraveryFailures--
	}
}

// BraveryPenalty returns the accuracy cost of c's accumulated bravery
// failures.
func (ctl *Controller) BraveryPenalty(c *character.Character) int {
	return braveryPenaltyPerFailure * c.BraveryFailures
}

// IsIncapacitated reports whether c is out of the fight. The resolver asks
// through the controller so tests can substitute the predicate.
func (ctl *Controller) IsIncapacitated(c *character.Character) bool {
	return c.IsIncapacitated()
}

// SkillLevel returns c's level in the named skill.
func (ctl *Controller) SkillLevel(c *character.Character, name string) int {
	return c.SkillLevel(name)
}
