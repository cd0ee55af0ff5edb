package combat

import (
	"fmt"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/dice"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

const (
	rangedBaseChance = 50.0
	// minHitChance keeps an in-range shot from being a guaranteed miss;
	// maxHitChance keeps any shot from being a guaranteed hit.
	minHitChance = 0.01
	maxHitChance = 99.5

	// burstFollowPenalty is the accuracy cost of the second and later
	// rounds of a burst or automatic string.
	burstFollowPenalty = 20.0
	// firstAttackPenalty is the familiarization cost of a character's
	// first attack against a particular target. Very careful aiming
	// waives it.
	firstAttackPenalty = 15.0
)

// RangeModifier returns the accuracy adjustment for firing at
// distanceFeet with a weapon reaching maxRangeFeet. Inside optimal range
// (30% of maximum) the bonus tapers from +10 at point blank to 0; beyond
// it the penalty grows linearly to -20 at maximum range.
//
// Precondition: maxRangeFeet > 0.
func RangeModifier(distanceFeet, maxRangeFeet float64) float64 {
	optimal := maxRangeFeet * 0.3
	if distanceFeet <= optimal {
		return 10.0 * (1.0 - distanceFeet/optimal)
	}
	return -(distanceFeet - optimal) / (maxRangeFeet - optimal) * 20.0
}

// Calculator computes ranged hit chances and rolls full hit results. It
// reads shooter and target state but never mutates either.
type Calculator struct {
	behavior Behavior
	burst    *BurstTracker
	src      dice.Source
}

// NewCalculator creates a Calculator.
//
// Precondition: behavior, burst, and src are non-nil.
func NewCalculator(behavior Behavior, burst *BurstTracker, src dice.Source) *Calculator {
	if behavior == nil {
		panic("combat: NewCalculator: precondition violated: behavior must not be nil")
	}
	if burst == nil {
		panic("combat: NewCalculator: precondition violated: burst must not be nil")
	}
	if src == nil {
		panic("combat: NewCalculator: precondition violated: src must not be nil")
	}
	return &Calculator{behavior: behavior, burst: burst, src: src}
}

// RangedHitChance returns the percent chance for shooter to hit target at
// distanceFeet with w. Beyond the weapon's maximum range the chance is 0;
// in range it is clamped to [0.01, 99.5].
//
// The chance stacks the base 50% with the shooter's dexterity modifier,
// weapon accuracy, the range curve, the aiming modifier (zeroed on
// follow-on burst shots), the weapon-skill bonus (doubled under very
// careful aiming), and penalties for shooter movement, accumulated
// wounds, failed bravery checks, burst follow-on shots, and a first
// attack on an unfamiliar target. A prone target is harder to hit.
//
// Precondition: shooter, target, and w are non-nil; w is a ranged weapon.
func (calc *Calculator) RangedHitChance(shooter, target *world.Unit, w *weapon.Weapon, distanceFeet float64) float64 {
	if w.Class != weapon.ClassRanged {
		panic(fmt.Sprintf("combat: Calculator.RangedHitChance: precondition violated: %q is not a ranged weapon", w.WeaponID()))
	}
	if distanceFeet > w.MaxRangeFeet {
		return 0
	}

	sc := shooter.Character
	tc := target.Character
	followOn := calc.burst.FollowOnShot(shooter.ID)

	aimMod := float64(sc.Aiming.AccuracyModifier())
	if followOn {
		aimMod = 0
	}
	skillBonus := float64(character.SkillBonusPerLevel * calc.behavior.SkillLevel(sc, w.CombatSkill))
	if sc.Aiming.IsMostDeliberate() {
		skillBonus *= 2
	}

	chance := rangedBaseChance
	chance += float64(sc.DexterityModifier())
	chance += float64(w.Accuracy)
	chance += RangeModifier(distanceFeet, w.MaxRangeFeet)
	chance += aimMod
	chance += skillBonus
	chance -= float64(sc.Movement.AttackPenalty())
	chance += tc.Position.TargetingPenalty()
	chance -= float64(sc.WoundPenalty())
	chance -= float64(calc.behavior.BraveryPenalty(sc))
	if followOn {
		chance -= burstFollowPenalty
	}
	if sc.FirstAttackOn(target.ID) && !sc.Aiming.IsMostDeliberate() {
		chance -= firstAttackPenalty
	}

	if chance < minHitChance {
		chance = minHitChance
	}
	if chance > maxHitChance {
		chance = maxHitChance
	}
	return chance
}

// DetermineRangedHit rolls shooter's shot at target and, on a hit, the
// struck location, severity, and damage. The same attack roll that
// decided the hit grades its quality for the location and severity
// tables.
//
// Precondition: shooter, target, and w are non-nil; w is a ranged weapon.
// Postcondition: on a hit the result's Damage is >= 1.
func (calc *Calculator) DetermineRangedHit(shooter, target *world.Unit, w *weapon.Weapon, distanceFeet float64) HitResult {
	chance := calc.RangedHitChance(shooter, target, w, distanceFeet)
	roll := dice.Percent(calc.src)
	if roll >= chance {
		return HitResult{}
	}
	location := LocationForQuality(roll, chance, calc.src)
	severity := SeverityForQuality(roll, chance, location, calc.src)
	return HitResult{
		Hit:      true,
		Location: location,
		Severity: severity,
		Damage:   ScaledDamage(w.Damage, severity, location),
	}
}
