// Package combat resolves attacks: the hit calculator and its quality
// tables, the impact resolver that turns hits into wounds and morale
// checks, the stray-shot pipeline for ranged misses, melee strikes, the
// weapon readiness state machine, and burst-fire bookkeeping.
package combat

import "github.com/ashfall-games/skirmish/internal/game/character"

// HitResult is the resolved outcome of a single attack roll. For the
// primary ranged attack it is produced at fire time and carried on the
// impact command; stray and melee sub-resolutions produce their own.
type HitResult struct {
	// Hit is false for a clean miss; the remaining fields are zero.
	Hit bool
	// Location is the body part struck.
	Location character.BodyPart
	// Severity is the wound severity rolled for the strike.
	Severity character.WoundSeverity
	// Damage is the final scaled damage, always >= 1 on a hit.
	Damage int
}
