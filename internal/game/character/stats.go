package character

// statModifierSteps encodes the lower half of the 1-100 stat curve as
// (highest stat, modifier) steps. The curve widens toward the middle so
// average stats cluster near a zero modifier; the upper half mirrors the
// lower around 51.
var statModifierSteps = [...]struct {
	max int
	mod int
}{
	{1, -20}, {2, -19}, {3, -18}, {4, -17}, {5, -16}, {6, -15},
	{8, -14}, {10, -13}, {12, -12}, {14, -11}, {16, -10}, {18, -9}, {20, -8},
	{22, -7}, {24, -6}, {27, -5}, {30, -4}, {34, -3}, {39, -2}, {45, -1}, {51, 0},
}

// StatModifier maps a 1-100 stat onto a -20..+20 modifier. Out-of-range
// stats clamp to the nearest bound.
//
// Postcondition: result is in [-20, 20]; StatModifier(51) == 0;
// StatModifier(s) == -StatModifier(101-s) for s in [52, 100].
func StatModifier(stat int) int {
	if stat < 1 {
		stat = 1
	}
	if stat > 100 {
		stat = 100
	}
	if stat > 51 {
		return -lowerHalfModifier(101 - stat)
	}
	return lowerHalfModifier(stat)
}

func lowerHalfModifier(stat int) int {
	for _, step := range statModifierSteps {
		if stat <= step.max {
			return step.mod
		}
	}
	return 0
}

// StrengthDamageBonus returns the flat melee damage bonus for a 1-100
// strength stat. Weak attackers lose a point or two; only the strongest
// gain more than one.
func StrengthDamageBonus(strength int) int {
	switch {
	case strength <= 20:
		return -2
	case strength <= 40:
		return -1
	case strength <= 60:
		return 0
	case strength <= 75:
		return 1
	case strength <= 90:
		return 2
	default:
		return 3
	}
}
