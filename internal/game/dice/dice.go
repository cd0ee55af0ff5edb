// Package dice provides the randomness abstraction for the skirmish
// simulation. Every roll in the engine flows through a Source so that a
// seeded source reproduces an entire run exactly.
package dice

// Source is the randomness provider for all combat rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int

	// Float64 returns a uniformly distributed float64 in [0.0, 1.0).
	Float64() float64
}

// D100 rolls a single percentile die.
//
// Postcondition: result is in [1, 100].
func D100(src Source) int {
	return src.Intn(100) + 1
}

// Percent returns a uniformly distributed chance roll in [0.0, 100.0).
// Probability comparisons in the combat tables are "roll < chance".
func Percent(src Source) float64 {
	return src.Float64() * 100.0
}
