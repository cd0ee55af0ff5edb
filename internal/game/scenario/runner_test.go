package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/engine"
	"github.com/ashfall-games/skirmish/internal/game/scenario"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

// scriptedSource replays queued rolls in order: ints feed Intn, floats
// feed Float64. A drained queue yields zero.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
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
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
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

func newScenarioEngine(t *testing.T, src *scriptedSource) *engine.Engine {
	t.Helper()
	reg := weapon.NewRegistry()
	require.NoError(t, reg.Register(testPistol()))
	require.NoError(t, reg.Register(testSabre()))
	factions := map[int]*world.Faction{
		1: {ID: 1, Name: "Azure Company", Color: world.Color{R: 0, G: 90, B: 200}},
		2: {ID: 2, Name: "Crimson Band", Color: world.Color{R: 200, G: 30, B: 30}},
	}
	return engine.NewEngine(reg, factions, src, zap.NewNop())
}

// writeScript drops a scenario file into a temp dir and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// TestNewRunner_NilArgumentsPanic verifies constructor preconditions.
func TestNewRunner_NilArgumentsPanic(t *testing.T) {
	eng := newScenarioEngine(t, &scriptedSource{})

	assert.Panics(t, func() { scenario.NewRunner(nil, 0, zap.NewNop()) })
	assert.Panics(t, func() { scenario.NewRunner(eng, 0, nil) })
}

// TestRunner_SpawnAndAdvance verifies spawn returns sequential unit ids
// into Lua and advance moves the shared clock.
func TestRunner_SpawnAndAdvance(t *testing.T) {
	eng := newScenarioEngine(t, &scriptedSource{})
	r := scenario.NewRunner(eng, 0, zap.NewNop())
	path := writeScript(t, `
		local a = engine.spawn("Abe", 1, 0, 0, "wpn_pistol")
		local b = engine.spawn("Kira", 2, 35, 0, "", "wpn_sabre")
		assert(a == 1, "first unit id")
		assert(b == 2, "second unit id")
		engine.advance(5)
	`)

	rep, err := r.Run(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rep.Tick)
	require.Len(t, rep.Units, 2)
	assert.Equal(t, "Abe", rep.Units[0].Name)
	assert.Equal(t, "Kira", rep.Units[1].Name)
}

// TestRunner_FireFight verifies a scripted exchange: the shot rolled at
// fire time lands two ticks later, visible to the script through
// engine.health before the report confirms it.
func TestRunner_FireFight(t *testing.T) {
	src := &scriptedSource{floats: []float64{0.34, 0.30}, ints: []int{49, 0}}
	eng := newScenarioEngine(t, src)
	r := scenario.NewRunner(eng, 0, zap.NewNop())
	path := writeScript(t, `
		local shooter = engine.spawn("Abe", 1, 0, 0, "wpn_pistol")
		local target = engine.spawn("Bruno", 2, 210, 0, "wpn_pistol")
		engine.fire(shooter, target)
		assert(engine.health(target) == 100, "round still in flight")
		engine.advance(2)
		assert(engine.health(target) == 90, "serious chest wound expected")
		assert(not engine.incapacitated(target), "target should still be up")
	`)

	rep, err := r.Run(path)
	require.NoError(t, err)
	require.Len(t, rep.Units, 2)
	assert.Equal(t, 1, rep.Units[0].AttacksSuccessful)
	assert.Equal(t, 90, rep.Units[1].Health)
	assert.Equal(t, 1, rep.Units[1].WoundsReceived)
}

// TestRunner_OrdersSurface verifies the stance, movement, aim, hold,
// ready, tick, cease_fire, and log bindings against the live engine.
func TestRunner_OrdersSurface(t *testing.T) {
	eng := newScenarioEngine(t, &scriptedSource{})
	r := scenario.NewRunner(eng, 0, zap.NewNop())
	path := writeScript(t, `
		local u = engine.spawn("Abe", 1, 0, 0, "wpn_pistol")
		engine.stance(u, "prone")
		engine.movement(u, "run")
		engine.aim(u, "very_careful")
		engine.hold(u, "ready")
		engine.ready(u)
		assert(engine.tick() == 0, "clock starts at zero")
		engine.advance(60)
		assert(engine.tick() == 60, "advance moves the clock")
		engine.cease_fire(u)
		engine.log("orders complete")
	`)

	_, err := r.Run(path)
	require.NoError(t, err)

	u, ok := eng.Unit(1)
	require.True(t, ok)
	assert.Equal(t, character.PositionProne, u.Character.Position)
	assert.Equal(t, character.MoveRun, u.Character.Movement)
	assert.Equal(t, character.AimVeryCareful, u.Character.Aiming)
	assert.Equal(t, weapon.StateReady, u.Character.WeaponState)
	assert.Equal(t, int64(60), eng.Now())
}

// TestRunner_EngineRefusalAborts verifies an engine error surfaces as a
// Lua error and aborts the run with the script path in the wrap.
func TestRunner_EngineRefusalAborts(t *testing.T) {
	eng := newScenarioEngine(t, &scriptedSource{})
	r := scenario.NewRunner(eng, 0, zap.NewNop())
	path := writeScript(t, `engine.fire(9, 1)`)

	rep, err := r.Run(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no unit with id 9")
	assert.Contains(t, err.Error(), path)
	assert.Empty(t, rep.Units)
}

// TestRunner_BadOrderNameAborts verifies an unknown stance name raises
// out of the parse rather than silently defaulting.
func TestRunner_BadOrderNameAborts(t *testing.T) {
	eng := newScenarioEngine(t, &scriptedSource{})
	r := scenario.NewRunner(eng, 0, zap.NewNop())
	path := writeScript(t, `
		local u = engine.spawn("Abe", 1, 0, 0, "wpn_pistol")
		engine.stance(u, "supine")
	`)

	_, err := r.Run(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown position")
}

// TestRunner_MissingScriptFile verifies a bad path errors cleanly.
func TestRunner_MissingScriptFile(t *testing.T) {
	eng := newScenarioEngine(t, &scriptedSource{})
	r := scenario.NewRunner(eng, 0, zap.NewNop())

	_, err := r.Run(filepath.Join(t.TempDir(), "absent.lua"))
	assert.Error(t, err)
}

// TestRunner_RunawayScriptStopped verifies the instruction budget cuts an
// infinite loop off.
func TestRunner_RunawayScriptStopped(t *testing.T) {
	eng := newScenarioEngine(t, &scriptedSource{})
	r := scenario.NewRunner(eng, 5_000, zap.NewNop())
	path := writeScript(t, `while true do end`)

	_, err := r.Run(path)
	assert.Error(t, err)
}
