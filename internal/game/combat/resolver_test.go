package combat_test

import (
	"testing"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/combat"
	"github.com/ashfall-games/skirmish/internal/game/dice"
	"github.com/ashfall-games/skirmish/internal/game/schedule"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedSource replays queued rolls in order: ints feed Intn (so a
// D100 of R wants the value R-1 queued), floats feed Float64. A drained
// queue yields zero. The call counters expose how far a roll pipeline
// ran before it bailed out.
type scriptedSource struct {
	ints       []int
	floats     []float64
	intCalls   int
	floatCalls int
}

func (s *scriptedSource) Intn(n int) int {
	s.intCalls++
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (s *scriptedSource) Float64() float64 {
	s.floatCalls++
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// stubBehavior applies wounds by direct mutation and records every
// bravery check it is asked for, without any hesitation or morale side
// effects of its own.
type stubBehavior struct {
	braveryPenalty int
	checks         []string
}

func (s *stubBehavior) ApplyWound(c *character.Character, w character.Wound, tick int64, sched *schedule.Scheduler, ownerID int) {
	c.Wounds = append(c.Wounds, w)
	c.WoundsReceived++
	c.CurrentHealth -= w.Damage
}

func (s *stubBehavior) BraveryCheck(c *character.Character, tick int64, sched *schedule.Scheduler, ownerID int, reason string) {
	s.checks = append(s.checks, c.Name+": "+reason)
}

func (s *stubBehavior) BraveryPenalty(c *character.Character) int { return s.braveryPenalty }

func (s *stubBehavior) IsIncapacitated(c *character.Character) bool { return c.IsIncapacitated() }

func (s *stubBehavior) SkillLevel(c *character.Character, name string) int { return c.SkillLevel(name) }

// combatEnv wires a resolver over a fresh field with a stub behavior.
type combatEnv struct {
	sched *schedule.Scheduler
	field *world.Field
	stub  *stubBehavior
	burst *combat.BurstTracker
	res   *combat.Resolver
}

func newCombatEnv(src dice.Source) *combatEnv {
	sched := schedule.NewScheduler(schedule.NewClock(), zap.NewNop())
	field := world.NewField()
	stub := &stubBehavior{}
	burst := combat.NewBurstTracker()
	return &combatEnv{
		sched: sched,
		field: field,
		stub:  stub,
		burst: burst,
		res:   combat.NewResolver(field, sched, stub, burst, src, zap.NewNop()),
	}
}

func (e *combatEnv) place(t *testing.T, id int, name string, faction int, x, y float64) *world.Unit {
	t.Helper()
	u := world.NewUnit(id, character.New(id, name, faction), x, y, world.ColorGray)
	require.NoError(t, e.field.Add(u))
	return u
}

// drain collects every event due by now without dispatching anything.
func (e *combatEnv) drain(now int64) []schedule.Event {
	var out []schedule.Event
	e.sched.DrainDue(now, func(ev schedule.Event) { out = append(out, ev) })
	return out
}

func testPistol() *weapon.Weapon {
	return &weapon.Weapon{
		ID:           "wpn_pistol",
		Name:         "service pistol",
		Class:        weapon.ClassRanged,
		Damage:       10,
		CombatSkill:  character.SkillPistol,
		InitialState: weapon.StateHolstered,
		States: []weapon.State{
			{Name: weapon.StateHolstered, Next: weapon.StateDrawing, Ticks: 0},
			{Name: weapon.StateDrawing, Next: weapon.StateReady, Ticks: 60},
			{Name: weapon.StateReady, Next: weapon.StateAiming, Ticks: 15},
			{Name: weapon.StateAiming, Next: weapon.StateFiring, Ticks: 30},
			{Name: weapon.StateFiring, Next: weapon.StateRecovering, Ticks: 5},
			{Name: weapon.StateRecovering, Next: weapon.StateAiming, Ticks: 20},
			{Name: weapon.StateReloading, Next: weapon.StateReady, Ticks: 90},
		},
		MaxRangeFeet: 100,
		VelocityFPS:  1000,
		Projectile:   "9mm round",
		AmmoCapacity: 12,
		ReloadTicks:  90,
		FiringModes:  []weapon.FiringMode{weapon.FiringModeSingle},
	}
}

func testSabre() *weapon.Weapon {
	return &weapon.Weapon{
		ID:           "wpn_sabre",
		Name:         "sabre",
		Class:        weapon.ClassMelee,
		Damage:       8,
		CombatSkill:  character.SkillSabre,
		LengthFeet:   3,
		InitialState: weapon.StateSheathed,
		States: []weapon.State{
			{Name: weapon.StateSheathed, Next: weapon.StateUnsheathing, Ticks: 0},
			{Name: weapon.StateUnsheathing, Next: weapon.StateMeleeReady, Ticks: 90},
			{Name: weapon.StateMeleeReady, Next: "", Ticks: 0},
			{Name: weapon.StateRecovering, Next: weapon.StateMeleeReady, Ticks: 60},
		},
		MeleeKind:     weapon.MeleeKindLong,
		AttackTicks:   60,
		CooldownTicks: 60,
	}
}

// TestResolveImpact_HitRecordsWoundAndCounters verifies a resolved hit
// lands the wound on the target, tallies the shooter, runs the target's
// morale check, and flashes the highlight with its scheduled revert.
func TestResolveImpact_HitRecordsWoundAndCounters(t *testing.T) {
	e := newCombatEnv(&scriptedSource{})
	shooter := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 140, 0)
	w := testPistol()

	e.res.ResolveImpact(shooter, target, w, 100, combat.HitResult{
		Hit:      true,
		Location: character.PartChest,
		Severity: character.WoundSerious,
		Damage:   12,
	})

	require.Len(t, target.Character.Wounds, 1)
	assert.Equal(t, character.Wound{
		Location:   character.PartChest,
		Severity:   character.WoundSerious,
		Damage:     12,
		WeaponName: "9mm round",
		WeaponID:   "wpn_pistol",
		Cause:      "9mm round",
	}, target.Character.Wounds[0])
	assert.Equal(t, 88, target.Character.CurrentHealth)
	assert.Equal(t, 1, target.Character.WoundsReceived)

	assert.Equal(t, 1, shooter.Character.AttacksSuccessful)
	assert.Equal(t, 1, shooter.Character.RangedAttacksSuccessful)
	assert.Equal(t, 1, shooter.Character.SeriousInflicted)
	assert.Zero(t, shooter.Character.HeadshotsAttempted)
	assert.Zero(t, shooter.Character.TargetsIncapacitated)

	// Serious chest wound leaves the target on his feet.
	assert.False(t, target.Character.IsIncapacitated())
	assert.Greater(t, target.Character.BaseMovementSpeed, 0.0)

	assert.Equal(t, []string{"Bruno: wounded by 9mm round"}, e.stub.checks)

	assert.True(t, target.HitHighlighted)
	assert.Equal(t, world.ColorYellow, target.Color)
	events := e.drain(115)
	require.Len(t, events, 1)
	assert.Equal(t, int64(115), events[0].Tick)
	assert.Equal(t, schedule.WorldOwner, events[0].OwnerID)
	assert.Equal(t, schedule.ClearHitHighlight{UnitID: 2}, events[0].Command)
}

// TestResolveImpact_HeadshotTalliesBothCounters verifies a head hit bumps
// the attempted and successful headshot counters together.
func TestResolveImpact_HeadshotTalliesBothCounters(t *testing.T) {
	e := newCombatEnv(&scriptedSource{})
	shooter := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 140, 0)

	e.res.ResolveImpact(shooter, target, testPistol(), 50, combat.HitResult{
		Hit:      true,
		Location: character.PartHead,
		Severity: character.WoundLight,
		Damage:   6,
	})

	assert.Equal(t, 1, shooter.Character.HeadshotsAttempted)
	assert.Equal(t, 1, shooter.Character.HeadshotsSuccessful)
	assert.Equal(t, 1, shooter.Character.LightInflicted)
	// Light head wound: no incapacitation, no headshot takedown.
	assert.Zero(t, shooter.Character.HeadshotIncapacitations)
}

// TestResolveImpact_IncapacitationPurgesTarget verifies a critical head
// hit downs the target: movement zeroed, burst state dropped, every
// owned event cancelled, takedown counters bumped. The world-owned
// highlight revert must survive the purge.
func TestResolveImpact_IncapacitationPurgesTarget(t *testing.T) {
	e := newCombatEnv(&scriptedSource{})
	shooter := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 140, 0)

	// The target has plans: two pending events and a burst in progress.
	e.sched.Schedule(150, target.ID, schedule.ClearFiringHighlight{UnitID: target.ID})
	e.sched.Schedule(160, target.ID, schedule.ClearFiringHighlight{UnitID: target.ID})
	e.burst.Record(target.ID, true)

	e.res.ResolveImpact(shooter, target, testPistol(), 100, combat.HitResult{
		Hit:      true,
		Location: character.PartHead,
		Severity: character.WoundCritical,
		Damage:   25,
	})

	assert.True(t, target.Character.IsIncapacitated())
	assert.Zero(t, target.Character.BaseMovementSpeed)
	assert.Equal(t, character.MoveStationary, target.Character.Movement)
	assert.Zero(t, e.burst.ShotsFired(target.ID))
	assert.Zero(t, e.sched.PendingFor(target.ID))

	assert.Equal(t, 1, shooter.Character.TargetsIncapacitated)
	assert.Equal(t, 1, shooter.Character.HeadshotIncapacitations)
	assert.Equal(t, 1, shooter.Character.CriticalInflicted)

	// Only the highlight revert remains; the purged events never fire.
	events := e.drain(200)
	require.Len(t, events, 1)
	assert.Equal(t, int64(115), events[0].Tick)
	assert.Equal(t, schedule.WorldOwner, events[0].OwnerID)
}

// TestResolveImpact_RepeatHitOnDownedTarget verifies hitting an already
// incapacitated target counts another takedown; there is no one-shot
// transition latch.
func TestResolveImpact_RepeatHitOnDownedTarget(t *testing.T) {
	e := newCombatEnv(&scriptedSource{})
	shooter := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 140, 0)
	w := testPistol()

	crit := combat.HitResult{Hit: true, Location: character.PartChest, Severity: character.WoundCritical, Damage: 20}
	e.res.ResolveImpact(shooter, target, w, 100, crit)
	e.res.ResolveImpact(shooter, target, w, 110, crit)

	assert.Equal(t, 2, shooter.Character.TargetsIncapacitated)
	assert.Equal(t, 2, target.Character.WoundsReceived)
	assert.Zero(t, shooter.Character.HeadshotIncapacitations)
}

// TestResolveImpact_AllyMoraleRadius verifies which bystanders get a
// morale check when a unit is wounded: conscious same-faction units
// within 210 pixels inclusive, never the casualty's enemies, never the
// already downed.
func TestResolveImpact_AllyMoraleRadius(t *testing.T) {
	e := newCombatEnv(&scriptedSource{})
	target := e.place(t, 1, "Tara", 1, 0, 0)
	shooter := e.place(t, 2, "Silas", 2, -140, 0)
	e.place(t, 3, "Ada", 1, 210, 0)
	e.place(t, 4, "Bea", 1, 210.0001, 0)
	downed := e.place(t, 5, "Cass", 1, 50, 0)
	e.place(t, 6, "Eve", 2, 30, 0)
	downed.Character.Wounds = append(downed.Character.Wounds, character.Wound{
		Location: character.PartChest,
		Severity: character.WoundCritical,
		Damage:   20,
	})

	e.res.ResolveImpact(shooter, target, testPistol(), 0, combat.HitResult{
		Hit:      true,
		Location: character.PartChest,
		Severity: character.WoundSerious,
		Damage:   12,
	})

	assert.Equal(t, []string{
		"Tara: wounded by 9mm round",
		"Ada: ally Tara hit by 9mm round",
	}, e.stub.checks)
}

// TestResolveImpact_MissWithNoBystanders verifies a ranged miss with
// nobody near the extended trajectory resolves to nothing: no wounds, no
// counters, and the stray pipeline stops at the empty candidate scan.
func TestResolveImpact_MissWithNoBystanders(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.5}}
	e := newCombatEnv(src)
	shooter := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 140, 0)

	e.res.ResolveImpact(shooter, target, testPistol(), 100, combat.HitResult{})

	assert.Zero(t, shooter.Character.AttacksSuccessful)
	assert.Zero(t, target.Character.WoundsReceived)
	assert.False(t, target.HitHighlighted)
	// Only the overshoot roll was consumed; the trigger roll never ran.
	assert.Equal(t, 1, src.floatCalls)
}

// TestResolveImpact_MeleeMissIsTerminal verifies a melee miss never
// enters the stray-shot pipeline.
func TestResolveImpact_MeleeMissIsTerminal(t *testing.T) {
	src := &scriptedSource{}
	e := newCombatEnv(src)
	attacker := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 30, 0)

	e.res.ResolveImpact(attacker, target, testSabre(), 100, combat.HitResult{})

	assert.Zero(t, src.floatCalls)
	assert.Zero(t, target.Character.WoundsReceived)
}

// TestResolveImpact_HighlightNotDuplicated verifies a second hit on a
// unit already flashing schedules no second revert.
func TestResolveImpact_HighlightNotDuplicated(t *testing.T) {
	e := newCombatEnv(&scriptedSource{})
	shooter := e.place(t, 1, "Abe", 1, 0, 0)
	target := e.place(t, 2, "Bruno", 2, 140, 0)
	w := testPistol()

	light := combat.HitResult{Hit: true, Location: character.PartChest, Severity: character.WoundLight, Damage: 4}
	e.res.ResolveImpact(shooter, target, w, 100, light)
	e.res.ResolveImpact(shooter, target, w, 101, light)

	events := e.drain(130)
	require.Len(t, events, 1)
	assert.Equal(t, int64(115), events[0].Tick)
}

// TestNewResolver_NilArgumentsPanic verifies each constructor
// precondition.
func TestNewResolver_NilArgumentsPanic(t *testing.T) {
	field := world.NewField()
	sched := schedule.NewScheduler(schedule.NewClock(), zap.NewNop())
	stub := &stubBehavior{}
	burst := combat.NewBurstTracker()
	src := &scriptedSource{}
	logger := zap.NewNop()

	assert.Panics(t, func() { combat.NewResolver(nil, sched, stub, burst, src, logger) })
	assert.Panics(t, func() { combat.NewResolver(field, nil, stub, burst, src, logger) })
	assert.Panics(t, func() { combat.NewResolver(field, sched, nil, burst, src, logger) })
	assert.Panics(t, func() { combat.NewResolver(field, sched, stub, nil, src, logger) })
	assert.Panics(t, func() { combat.NewResolver(field, sched, stub, burst, nil, logger) })
	assert.Panics(t, func() { combat.NewResolver(field, sched, stub, burst, src, nil) })
}
