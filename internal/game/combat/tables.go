package combat

import (
	"fmt"
	"math"

	"github.com/ashfall-games/skirmish/internal/game/character"
	"github.com/ashfall-games/skirmish/internal/game/dice"
)

// Hit-quality shares: a hit roll under 20% of the chance to hit is an
// excellent shot, under 70% a good one. Everything else is a plain hit.
const (
	excellentQualityShare = 0.2
	goodQualityShare      = 0.7
)

const headDamageMultiplier = 1.5

// RandomBodyPart picks a struck body part with the flat location
// distribution: 10% head, 15% each arm, 30% chest, 15% each leg.
func RandomBodyPart(src dice.Source) character.BodyPart {
	roll := dice.D100(src)
	switch {
	case roll <= 10:
		return character.PartHead
	case roll <= 25:
		return character.PartLeftArm
	case roll <= 40:
		return character.PartRightArm
	case roll <= 70:
		return character.PartChest
	case roll <= 85:
		return character.PartLeftLeg
	default:
		return character.PartRightLeg
	}
}

// LocationForQuality picks the struck body part for a hit whose attack
// roll was hitRoll against chanceToHit. Excellent shots find the head 15%
// of the time and the chest otherwise; good shots find the head 2% of the
// time and split the rest between chest and abdomen; plain hits land
// anywhere.
//
// Precondition: the attack already hit, so hitRoll < chanceToHit.
func LocationForQuality(hitRoll, chanceToHit float64, src dice.Source) character.BodyPart {
	switch {
	case hitRoll < chanceToHit*excellentQualityShare:
		if dice.Percent(src) < 15 {
			return character.PartHead
		}
		return character.PartChest
	case hitRoll < chanceToHit*goodQualityShare:
		if dice.Percent(src) < 2 {
			return character.PartHead
		}
		if src.Float64() < 0.5 {
			return character.PartChest
		}
		return character.PartAbdomen
	default:
		return RandomBodyPart(src)
	}
}

// SeverityForQuality rolls the wound severity for a hit. Excellent shots
// are always critical. Otherwise severity is drawn from one of two bands:
// vital areas 30% critical / 40% serious / 25% light / 5% scratch, other
// locations 10% / 25% / 45% / 20%.
func SeverityForQuality(hitRoll, chanceToHit float64, location character.BodyPart, src dice.Source) character.WoundSeverity {
	if hitRoll < chanceToHit*excellentQualityShare {
		return character.WoundCritical
	}
	roll := dice.Percent(src)
	if location.IsVital() {
		switch {
		case roll < 30:
			return character.WoundCritical
		case roll < 70:
			return character.WoundSerious
		case roll < 95:
			return character.WoundLight
		default:
			return character.WoundScratch
		}
	}
	switch {
	case roll < 10:
		return character.WoundCritical
	case roll < 35:
		return character.WoundSerious
	case roll < 80:
		return character.WoundLight
	default:
		return character.WoundScratch
	}
}

// StraySeverity rolls the severity for a stray hit, skewed toward minor
// wounds: 5% critical, 15% serious, 40% light, 40% scratch.
func StraySeverity(src dice.Source) character.WoundSeverity {
	roll := dice.Percent(src)
	switch {
	case roll < 5:
		return character.WoundCritical
	case roll < 20:
		return character.WoundSerious
	case roll < 60:
		return character.WoundLight
	default:
		return character.WoundScratch
	}
}

// ScaledDamage converts a weapon's base damage into the damage a wound of
// the given severity deals at the given location. Critical and serious
// wounds take the full base, light wounds 40% of it, scratches a single
// point. Head wounds are then multiplied by 1.5. The result is never
// below 1.
//
// Precondition: severity is a known WoundSeverity.
func ScaledDamage(weaponDamage int, severity character.WoundSeverity, location character.BodyPart) int {
	var dmg int
	switch severity {
	case character.WoundCritical, character.WoundSerious:
		dmg = weaponDamage
	case character.WoundLight:
		dmg = int(math.Round(float64(weaponDamage) * 0.4))
	case character.WoundScratch:
		dmg = 1
	default:
		panic(fmt.Sprintf("combat: ScaledDamage: unknown severity %d", int(severity)))
	}
	if location == character.PartHead {
		dmg = int(math.Round(float64(dmg) * headDamageMultiplier))
	}
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
