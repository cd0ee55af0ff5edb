package character

import "fmt"

// PositionState is a character's body position. Position drives three
// different numbers: how exposed the character is to stray shots, how
// likely a stray picks them over other candidates, and how hard they are
// to hit deliberately.
type PositionState int

const (
	PositionStanding PositionState = iota
	PositionKneeling
	PositionProne
)

// String returns the lowercase position name.
func (p PositionState) String() string {
	switch p {
	case PositionStanding:
		return "standing"
	case PositionKneeling:
		return "kneeling"
	case PositionProne:
		return "prone"
	default:
		panic(fmt.Sprintf("character: PositionState.String: unknown position %d", int(p)))
	}
}

// StrayExposure is the probability contribution (in percent points, before
// the subsystem clamp) this position adds to a stray shot finding anyone.
func (p PositionState) StrayExposure() float64 {
	switch p {
	case PositionStanding:
		return 0.5
	case PositionKneeling:
		return 0.25
	case PositionProne:
		return 0.125
	default:
		panic(fmt.Sprintf("character: PositionState.StrayExposure: unknown position %d", int(p)))
	}
}

// StrayWeight is the relative weight used when picking which candidate a
// stray shot actually strikes.
func (p PositionState) StrayWeight() int {
	switch p {
	case PositionStanding:
		return 100
	case PositionKneeling:
		return 50
	case PositionProne:
		return 25
	default:
		panic(fmt.Sprintf("character: PositionState.StrayWeight: unknown position %d", int(p)))
	}
}

// TargetingPenalty is the chance adjustment applied when this character is
// the target of a deliberate or stray shot. Only prone targets are harder
// to hit.
func (p PositionState) TargetingPenalty() float64 {
	switch p {
	case PositionStanding, PositionKneeling:
		return 0
	case PositionProne:
		return -15
	default:
		panic(fmt.Sprintf("character: PositionState.TargetingPenalty: unknown position %d", int(p)))
	}
}

// ParsePosition maps a position name to its PositionState.
func ParsePosition(name string) (PositionState, error) {
	switch name {
	case "standing":
		return PositionStanding, nil
	case "kneeling":
		return PositionKneeling, nil
	case "prone":
		return PositionProne, nil
	default:
		return PositionStanding, fmt.Errorf("character: ParsePosition: unknown position %q", name)
	}
}

// MovementType is a character's current gait.
type MovementType int

const (
	MoveStationary MovementType = iota
	MoveCrawl
	MoveWalk
	MoveJog
	MoveRun
)

// String returns the lowercase movement name.
func (m MovementType) String() string {
	switch m {
	case MoveStationary:
		return "stationary"
	case MoveCrawl:
		return "crawl"
	case MoveWalk:
		return "walk"
	case MoveJog:
		return "jog"
	case MoveRun:
		return "run"
	default:
		panic(fmt.Sprintf("character: MovementType.String: unknown movement %d", int(m)))
	}
}

// AttackPenalty is the accuracy cost of attacking while moving at this
// gait. Crawling is clumsier than walking; running is worst.
func (m MovementType) AttackPenalty() int {
	switch m {
	case MoveCrawl:
		return 10
	case MoveWalk:
		return 5
	case MoveJog:
		return 15
	case MoveRun:
		return 25
	default:
		return 0
	}
}

// ParseMovement maps a movement name to its MovementType.
func ParseMovement(name string) (MovementType, error) {
	switch name {
	case "stationary":
		return MoveStationary, nil
	case "crawl":
		return MoveCrawl, nil
	case "walk":
		return MoveWalk, nil
	case "jog":
		return MoveJog, nil
	case "run":
		return MoveRun, nil
	default:
		return MoveStationary, fmt.Errorf("character: ParseMovement: unknown movement %q", name)
	}
}

// AimingSpeed is how deliberately a character aims. Slower aim trades time
// for accuracy.
type AimingSpeed int

const (
	AimNormal AimingSpeed = iota
	AimQuick
	AimCareful
	AimVeryCareful
)

// String returns the lowercase aiming-speed name.
func (a AimingSpeed) String() string {
	switch a {
	case AimNormal:
		return "normal"
	case AimQuick:
		return "quick"
	case AimCareful:
		return "careful"
	case AimVeryCareful:
		return "very_careful"
	default:
		panic(fmt.Sprintf("character: AimingSpeed.String: unknown aiming speed %d", int(a)))
	}
}

// AccuracyModifier is the chance adjustment for this aiming speed.
func (a AimingSpeed) AccuracyModifier() int {
	switch a {
	case AimNormal:
		return 0
	case AimQuick:
		return -20
	case AimCareful:
		return 15
	case AimVeryCareful:
		return 25
	default:
		panic(fmt.Sprintf("character: AimingSpeed.AccuracyModifier: unknown aiming speed %d", int(a)))
	}
}

// DurationMultiplier scales the aiming stage's base ticks.
func (a AimingSpeed) DurationMultiplier() float64 {
	switch a {
	case AimNormal:
		return 1.0
	case AimQuick:
		return 0.5
	case AimCareful:
		return 2.0
	case AimVeryCareful:
		return 3.0
	default:
		panic(fmt.Sprintf("character: AimingSpeed.DurationMultiplier: unknown aiming speed %d", int(a)))
	}
}

// IsMostDeliberate reports whether this is the slowest, steadiest aim. The
// most deliberate aim waives the first-attack penalty.
func (a AimingSpeed) IsMostDeliberate() bool {
	return a == AimVeryCareful
}

// ParseAimingSpeed maps an aiming-speed name to its AimingSpeed.
func ParseAimingSpeed(name string) (AimingSpeed, error) {
	switch name {
	case "normal":
		return AimNormal, nil
	case "quick":
		return AimQuick, nil
	case "careful":
		return AimCareful, nil
	case "very_careful":
		return AimVeryCareful, nil
	default:
		return AimNormal, fmt.Errorf("character: ParseAimingSpeed: unknown aiming speed %q", name)
	}
}
