// Package engine assembles the simulation: the clock, the scheduler, the
// battlefield, and the combat subsystems, advanced tick by tick. All
// mutation flows through scheduled commands dispatched here, so a seeded
// dice source reproduces a run exactly.
package engine

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/behavior"
	"github.com/ashfall-games/skirmish/internal/game/combat"
	"github.com/ashfall-games/skirmish/internal/game/dice"
	"github.com/ashfall-games/skirmish/internal/game/schedule"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

// Engine owns a single simulation run.
//
// The engine is not safe for concurrent use; one goroutine drives it.
type Engine struct {
	runID    string
	clock    *schedule.Clock
	sched    *schedule.Scheduler
	field    *world.Field
	weapons  *weapon.Registry
	factions map[int]*world.Faction

	behavior  *behavior.Controller
	burst     *combat.BurstTracker
	calc      *combat.Calculator
	resolver  *combat.Resolver
	readiness *combat.Readiness

	src    dice.Source
	logger *zap.Logger

	nextID  int
	ticking bool
}

// NewEngine wires a fresh simulation over the given content.
//
// Precondition: weapons, src, and logger are non-nil. factions may be nil
// for a run that spawns no units.
func NewEngine(weapons *weapon.Registry, factions map[int]*world.Faction, src dice.Source, logger *zap.Logger) *Engine {
	if weapons == nil {
		panic("engine: NewEngine: precondition violated: weapons must not be nil")
	}
	if src == nil {
		panic("engine: NewEngine: precondition violated: src must not be nil")
	}
	if logger == nil {
		panic("engine: NewEngine: precondition violated: logger must not be nil")
	}
	if factions == nil {
		factions = make(map[int]*world.Faction)
	}

	clock := schedule.NewClock()
	sched := schedule.NewScheduler(clock, logger)
	field := world.NewField()
	ctl := behavior.NewController(src, logger)
	burst := combat.NewBurstTracker()

	return &Engine{
		runID:     uuid.NewString(),
		clock:     clock,
		sched:     sched,
		field:     field,
		weapons:   weapons,
		factions:  factions,
		behavior:  ctl,
		burst:     burst,
		calc:      combat.NewCalculator(ctl, burst, src),
		resolver:  combat.NewResolver(field, sched, ctl, burst, src, logger),
		readiness: combat.NewReadiness(sched, burst, logger),
		src:       src,
		logger:    logger,
		nextID:    1,
	}
}

// RunID identifies this simulation run in reports and logs.
func (e *Engine) RunID() string { return e.runID }

// Now returns the current simulation tick.
func (e *Engine) Now() int64 { return e.clock.Now() }

// Unit returns the unit with the given id.
func (e *Engine) Unit(id int) (*world.Unit, bool) { return e.field.ByID(id) }

// Tick advances the simulation one tick and dispatches every due event.
// Returns the tick just executed.
//
// Precondition: Tick must not be re-entered from a command handler.
func (e *Engine) Tick() int64 {
	if e.ticking {
		panic("engine: Engine.Tick: precondition violated: tick re-entered")
	}
	e.ticking = true
	defer func() { e.ticking = false }()

	now := e.clock.Advance()
	e.sched.DrainDue(now, e.dispatch)
	return now
}

// Run advances the simulation n ticks.
func (e *Engine) Run(n int) {
	for i := 0; i < n; i++ {
		e.Tick()
	}
}

// dispatch routes a due command to its handler. Commands naming a unit
// that no longer exists are logged and skipped; a command type the engine
// does not know is a programming error.
func (e *Engine) dispatch(ev schedule.Event) {
	switch cmd := ev.Command.(type) {
	case schedule.ClearHitHighlight:
		u, ok := e.unitFor(ev, cmd.UnitID)
		if !ok {
			return
		}
		u.HitHighlighted = false
		u.Color = u.BaseColor

	case schedule.ClearFiringHighlight:
		u, ok := e.unitFor(ev, cmd.UnitID)
		if !ok {
			return
		}
		u.FiringHighlighted = false

	case combat.RangedImpact:
		shooter, ok := e.unitFor(ev, cmd.ShooterID)
		if !ok {
			return
		}
		target, ok := e.unitFor(ev, cmd.TargetID)
		if !ok {
			return
		}
		w := e.weapons.Weapon(cmd.WeaponID)
		if w == nil {
			e.logger.Warn("impact for unknown weapon",
				zap.String("command", ev.Command.CommandName()),
				zap.String("weapon", cmd.WeaponID),
				zap.Int64("tick", ev.Tick),
			)
			return
		}
		e.resolver.ResolveImpact(shooter, target, w, ev.Tick, cmd.Hit)

	case combat.MeleeImpact:
		attacker, ok := e.unitFor(ev, cmd.AttackerID)
		if !ok {
			return
		}
		target, ok := e.unitFor(ev, cmd.TargetID)
		if !ok {
			return
		}
		w := e.weapons.Weapon(cmd.WeaponID)
		if w == nil {
			e.logger.Warn("impact for unknown weapon",
				zap.String("command", ev.Command.CommandName()),
				zap.String("weapon", cmd.WeaponID),
				zap.Int64("tick", ev.Tick),
			)
			return
		}
		e.resolver.ResolveMeleeAttack(attacker, target, w, ev.Tick)

	case combat.WeaponTransition:
		u, ok := e.unitFor(ev, cmd.UnitID)
		if !ok {
			return
		}
		e.readiness.ApplyTransition(u, cmd.ToState, ev.Tick)

	case behavior.HesitationEnd:
		u, ok := e.unitFor(ev, cmd.UnitID)
		if !ok {
			return
		}
		e.behavior.OnHesitationEnd(u.Character, ev.Tick)

	case behavior.BraveryRecovery:
		u, ok := e.unitFor(ev, cmd.UnitID)
		if !ok {
			return
		}
		e.behavior.OnBraveryRecovery(u.Character)

	default:
		panic(fmt.Sprintf("engine: Engine.dispatch: unknown command %q", ev.Command.CommandName()))
	}
}

// unitFor resolves a command's unit reference, logging and dropping the
// command when the unit is gone.
func (e *Engine) unitFor(ev schedule.Event, id int) (*world.Unit, bool) {
	u, ok := e.field.ByID(id)
	if !ok {
		e.logger.Warn("command for missing unit",
			zap.String("command", ev.Command.CommandName()),
			zap.Int("unit", id),
			zap.Int64("tick", ev.Tick),
		)
		return nil, false
	}
	return u, true
}
