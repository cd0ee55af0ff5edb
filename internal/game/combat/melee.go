package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/dice"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

const (
	meleeBaseChance = 60.0
	meleeMinChance  = 5.0
	meleeMaxChance  = 95.0

	// silhouetteRadiusFeet is the allowance subtracted from center
	// distance to get edge distance when judging reach.
	silhouetteRadiusFeet = 1.5
)

// InMeleeRange reports whether attacker is close enough to strike target
// with w: center distance minus the target silhouette allowance, compared
// against the weapon's total reach. The comparison is inclusive.
//
// Precondition: attacker and target are non-nil; w is a melee weapon.
func InMeleeRange(attacker, target *world.Unit, w *weapon.Weapon) bool {
	edge := attacker.DistanceTo(target) - world.FeetToPixels(silhouetteRadiusFeet)
	return edge <= world.FeetToPixels(w.TotalReachFeet())
}

// MeleeHitChance returns the percent chance for attacker to land a strike
// on target with w, clamped to [5, 95]. The base 60% is adjusted by the
// attacker's dexterity modifier, weapon accuracy, weapon-skill bonus,
// movement penalty, and the first-attack penalty against an unfamiliar
// target, then reduced by the target's dexterity modifier.
//
// Precondition: attacker, target, and w are non-nil; w is a melee weapon.
func MeleeHitChance(attacker, target *world.Unit, w *weapon.Weapon, b Behavior) float64 {
	if w.Class != weapon.ClassMelee {
		panic(fmt.Sprintf("combat: MeleeHitChance: precondition violated: %q is not a melee weapon", w.WeaponID()))
	}
	ac := attacker.Character
	tc := target.Character

	chance := meleeBaseChance
	chance += float64(ac.DexterityModifier())
	chance += float64(w.Accuracy)
	chance += float64(character.SkillBonusPerLevel * b.SkillLevel(ac, w.CombatSkill))
	chance -= float64(ac.Movement.AttackPenalty())
	if ac.FirstAttackOn(target.ID) && !ac.Aiming.IsMostDeliberate() {
		chance -= firstAttackPenalty
	}
	chance -= float64(tc.DexterityModifier())

	if chance < meleeMinChance {
		chance = meleeMinChance
	}
	if chance > meleeMaxChance {
		chance = meleeMaxChance
	}
	return chance
}

// ResolveMeleeAttack rolls and resolves a melee strike at attackTick. A
// hit rolls its location from the flat table and its severity as if the
// strike had been certain, scales damage, adds the attacker's strength
// bonus, and routes through the shared hit path. A miss is terminal;
// there is no melee analog of the stray shot. Either way the attacker
// enters recovery afterward.
//
// Precondition: attacker, target, and w are non-nil; w is a melee weapon.
func (r *Resolver) ResolveMeleeAttack(attacker, target *world.Unit, w *weapon.Weapon, attackTick int64) {
	if w.Class != weapon.ClassMelee {
		panic(fmt.Sprintf("combat: Resolver.ResolveMeleeAttack: precondition violated: %q is not a melee weapon", w.WeaponID()))
	}
	ac := attacker.Character
	ac.AttacksAttempted++
	ac.MeleeAttacksAttempted++

	chance := MeleeHitChance(attacker, target, w, r.behavior)
	ac.MarkAttacked(target.ID)
	roll := dice.D100(r.src)
	if float64(roll) > chance {
		r.logger.Info("melee attack missed",
			zap.String("attacker", ac.Name),
			zap.String("target", target.Character.Name),
			zap.Int("roll", roll),
			zap.Float64("chance", chance),
			zap.Int64("tick", attackTick),
		)
		r.scheduleMeleeRecovery(attacker, w, attackTick)
		return
	}

	location := RandomBodyPart(r.src)
	quality := dice.Percent(r.src)
	severity := SeverityForQuality(quality, 100.0, location, r.src)
	damage := ScaledDamage(w.Damage, severity, location) + character.StrengthDamageBonus(ac.Strength)
	if damage < 1 {
		damage = 1
	}

	hit := HitResult{Hit: true, Location: location, Severity: severity, Damage: damage}
	r.applyHit(attacker, target, w, attackTick, hit, w.WoundDescription())
	r.scheduleMeleeRecovery(attacker, w, attackTick)
}

// scheduleMeleeRecovery parks the attacker in the recovering stage, when
// the weapon defines one, and schedules the return to melee_ready after
// the weapon's cooldown. The transition is owned by the attacker, so
// cease-fire or incapacitation removes it.
func (r *Resolver) scheduleMeleeRecovery(attacker *world.Unit, w *weapon.Weapon, attackTick int64) {
	if w.CooldownTicks <= 0 {
		return
	}
	if _, ok := w.StateNamed(weapon.StateRecovering); ok {
		attacker.Character.WeaponState = weapon.StateRecovering
	}
	if _, ok := w.StateNamed(weapon.StateMeleeReady); !ok {
		return
	}
	r.sched.Schedule(attackTick+w.CooldownTicks, attacker.ID, WeaponTransition{UnitID: attacker.ID, ToState: weapon.StateMeleeReady})
}
