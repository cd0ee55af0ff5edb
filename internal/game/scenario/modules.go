package scenario

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

// registerEngineModule binds the engine.* table into L. Engine refusals
// become Lua errors, so a script that orders the impossible aborts rather
// than silently diverging from its author's intent.
func (r *Runner) registerEngineModule(L *lua.LState) {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"spawn":         r.luaSpawn,
		"fire":          r.luaFire,
		"melee":         r.luaMelee,
		"ready":         r.luaReady,
		"hold":          r.luaHold,
		"cease_fire":    r.luaCeaseFire,
		"stance":        r.luaStance,
		"movement":      r.luaMovement,
		"aim":           r.luaAim,
		"advance":       r.luaAdvance,
		"tick":          r.luaTick,
		"health":        r.luaHealth,
		"incapacitated": r.luaIncapacitated,
		"log":           r.luaLog,
	})
	L.SetGlobal("engine", mod)
}

// luaSpawn implements engine.spawn(name, faction, x, y, weapon_id
// [, melee_weapon_id]) -> unit id. Pass an empty weapon_id for a unit
// armed only in melee, or both empty for a bystander.
func (r *Runner) luaSpawn(L *lua.LState) int {
	name := L.CheckString(1)
	faction := L.CheckInt(2)
	x := float64(L.CheckNumber(3))
	y := float64(L.CheckNumber(4))
	rangedID := L.OptString(5, "")
	meleeID := L.OptString(6, "")

	u, err := r.engine.Spawn(name, faction, x, y, rangedID, meleeID)
	if err != nil {
		L.RaiseError("spawn: %v", err)
	}
	L.Push(lua.LNumber(u.ID))
	return 1
}

// luaFire implements engine.fire(shooter, target), firing at the current
// tick.
func (r *Runner) luaFire(L *lua.LState) int {
	shooter := L.CheckInt(1)
	target := L.CheckInt(2)
	if err := r.engine.FireAt(shooter, target, r.engine.Now()); err != nil {
		L.RaiseError("fire: %v", err)
	}
	return 0
}

// luaMelee implements engine.melee(attacker, target).
func (r *Runner) luaMelee(L *lua.LState) int {
	attacker := L.CheckInt(1)
	target := L.CheckInt(2)
	if err := r.engine.MeleeAt(attacker, target, r.engine.Now()); err != nil {
		L.RaiseError("melee: %v", err)
	}
	return 0
}

// luaReady implements engine.ready(unit).
func (r *Runner) luaReady(L *lua.LState) int {
	if err := r.engine.ReadyWeapon(L.CheckInt(1)); err != nil {
		L.RaiseError("ready: %v", err)
	}
	return 0
}

// luaHold implements engine.hold(unit, state).
func (r *Runner) luaHold(L *lua.LState) int {
	unit := L.CheckInt(1)
	state := L.CheckString(2)
	if err := r.engine.SetHoldState(unit, state); err != nil {
		L.RaiseError("hold: %v", err)
	}
	return 0
}

// luaCeaseFire implements engine.cease_fire(unit).
func (r *Runner) luaCeaseFire(L *lua.LState) int {
	if err := r.engine.CeaseFire(L.CheckInt(1)); err != nil {
		L.RaiseError("cease_fire: %v", err)
	}
	return 0
}

// luaStance implements engine.stance(unit, position) with the position
// named as in content files: standing, kneeling, prone.
func (r *Runner) luaStance(L *lua.LState) int {
	unit := L.CheckInt(1)
	p, err := character.ParsePosition(L.CheckString(2))
	if err != nil {
		L.RaiseError("stance: %v", err)
	}
	if err := r.engine.SetStance(unit, p); err != nil {
		L.RaiseError("stance: %v", err)
	}
	return 0
}

// luaMovement implements engine.movement(unit, type).
func (r *Runner) luaMovement(L *lua.LState) int {
	unit := L.CheckInt(1)
	m, err := character.ParseMovement(L.CheckString(2))
	if err != nil {
		L.RaiseError("movement: %v", err)
	}
	if err := r.engine.SetMovement(unit, m); err != nil {
		L.RaiseError("movement: %v", err)
	}
	return 0
}

// luaAim implements engine.aim(unit, speed).
func (r *Runner) luaAim(L *lua.LState) int {
	unit := L.CheckInt(1)
	a, err := character.ParseAimingSpeed(L.CheckString(2))
	if err != nil {
		L.RaiseError("aim: %v", err)
	}
	if err := r.engine.SetAiming(unit, a); err != nil {
		L.RaiseError("aim: %v", err)
	}
	return 0
}

// luaAdvance implements engine.advance(ticks).
func (r *Runner) luaAdvance(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 0 {
		L.RaiseError("advance: ticks must be >= 0, got %d", n)
	}
	r.engine.Run(n)
	return 0
}

// luaTick implements engine.tick() -> now.
func (r *Runner) luaTick(L *lua.LState) int {
	L.Push(lua.LNumber(r.engine.Now()))
	return 1
}

// luaHealth implements engine.health(unit) -> current health.
func (r *Runner) luaHealth(L *lua.LState) int {
	u := r.unitArg(L, 1)
	L.Push(lua.LNumber(u.Character.CurrentHealth))
	return 1
}

// luaIncapacitated implements engine.incapacitated(unit) -> bool.
func (r *Runner) luaIncapacitated(L *lua.LState) int {
	u := r.unitArg(L, 1)
	L.Push(lua.LBool(u.Character.IsIncapacitated()))
	return 1
}

// luaLog implements engine.log(msg), writing through the runner's logger
// so script output lands in the same stream as engine events.
func (r *Runner) luaLog(L *lua.LState) int {
	r.logger.Info("script log",
		zap.String("message", L.CheckString(1)),
		zap.Int64("tick", r.engine.Now()),
	)
	return 0
}

// unitArg resolves the unit id at the given stack position or raises.
func (r *Runner) unitArg(L *lua.LState, pos int) *world.Unit {
	id := L.CheckInt(pos)
	u, ok := r.engine.Unit(id)
	if !ok {
		L.RaiseError("no unit with id %d", id)
	}
	return u
}
