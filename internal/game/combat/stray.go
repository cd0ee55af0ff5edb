package combat

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/dice"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
)

const (
	// A missed shot carries 10 to 30 feet past the intended target.
	strayOvershootMin    = 70.0
	strayOvershootSpread = 140.0
	// strayDangerRadius is how far (in pixels) from the miss point a
	// bystander can be endangered. 15 feet.
	strayDangerRadius = 105.0
	// strayTriggerCap bounds the summed exposure of any candidate set.
	strayTriggerCap = 50.0
	// strayBaseChance is the accuracy of a shot nobody aimed.
	strayBaseChance = 15.0
	strayMinChance  = 1.0
	// strayDamageFactor reduces stray damage relative to an aimed hit.
	strayDamageFactor = 0.7
)

// HandleStrayShot continues a missed ranged shot past its intended target
// and checks whether anyone near the extended trajectory is struck. Most
// invocations end without effect: no candidates near the miss point, the
// trigger roll fails, or the stray accuracy roll fails.
//
// Precondition: shooter, target, and w are non-nil; w is a ranged weapon.
func (r *Resolver) HandleStrayShot(shooter, target *world.Unit, w *weapon.Weapon, impactTick int64) {
	if w.Class != weapon.ClassRanged {
		panic(fmt.Sprintf("combat: Resolver.HandleStrayShot: precondition violated: %q is not a ranged weapon", w.WeaponID()))
	}

	dx := target.X - shooter.X
	dy := target.Y - shooter.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		// No trajectory to extend.
		return
	}

	missDist := dist + strayOvershootMin + r.src.Float64()*strayOvershootSpread
	missX := shooter.X + dx/dist*missDist
	missY := shooter.Y + dy/dist*missDist

	candidates := r.strayCandidates(shooter, missX, missY, world.FeetToPixels(w.MaxRangeFeet))
	if len(candidates) == 0 {
		return
	}

	trigger := strayTriggerChance(candidates)
	if dice.Percent(r.src) >= trigger {
		return
	}

	victim := selectStrayVictim(candidates, r.src)
	r.performStrayHit(shooter, victim, w, impactTick)
}

// strayCandidates returns every unit inside the danger radius of the miss
// point that the shot could physically reach from the shooter. The
// shooter and the original target are both eligible.
func (r *Resolver) strayCandidates(shooter *world.Unit, missX, missY, maxRangePixels float64) []*world.Unit {
	var out []*world.Unit
	for _, u := range r.field.Units() {
		if math.Hypot(u.X-missX, u.Y-missY) > strayDangerRadius {
			continue
		}
		if shooter.DistanceTo(u) > maxRangePixels {
			continue
		}
		out = append(out, u)
	}
	return out
}

// strayTriggerChance sums the candidates' stance exposure, capped at
// strayTriggerCap percent.
func strayTriggerChance(candidates []*world.Unit) float64 {
	total := 0.0
	for _, u := range candidates {
		total += u.Character.Position.StrayExposure()
	}
	if total > strayTriggerCap {
		total = strayTriggerCap
	}
	return total
}

// selectStrayVictim draws one candidate, weighted by stance. The
// running-sum walk returns the last candidate if floating-point rounding
// leaves the draw unclaimed.
//
// Precondition: candidates is non-empty.
func selectStrayVictim(candidates []*world.Unit, src dice.Source) *world.Unit {
	totalWeight := 0.0
	for _, u := range candidates {
		totalWeight += float64(u.Character.Position.StrayWeight())
	}
	draw := src.Float64() * totalWeight
	running := 0.0
	for _, u := range candidates {
		running += float64(u.Character.Position.StrayWeight())
		if draw <= running {
			return u
		}
	}
	return candidates[len(candidates)-1]
}

// performStrayHit rolls accuracy against the stray victim and, on a hit,
// routes a reduced-damage wound through the shared hit path with the
// description tagged as a stray.
func (r *Resolver) performStrayHit(shooter, victim *world.Unit, w *weapon.Weapon, impactTick int64) {
	chance := strayBaseChance + victim.Character.Position.TargetingPenalty()
	if chance < strayMinChance {
		chance = strayMinChance
	}
	roll := dice.Percent(r.src)
	if roll >= chance {
		r.logger.Debug("stray shot missed",
			zap.String("victim", victim.Character.Name),
			zap.Float64("roll", roll),
			zap.Float64("chance", chance),
		)
		return
	}

	location := RandomBodyPart(r.src)
	severity := StraySeverity(r.src)
	damage := int(math.Round(float64(ScaledDamage(w.Damage, severity, location)) * strayDamageFactor))
	if damage < 1 {
		damage = 1
	}

	hit := HitResult{Hit: true, Location: location, Severity: severity, Damage: damage}
	r.applyHit(shooter, victim, w, impactTick, hit, w.WoundDescription()+" (stray)")
}
