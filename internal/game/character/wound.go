package character

import "fmt"

// WoundSeverity grades a wound. The order matters: severities compare with
// < and >=, and Critical wounds incapacitate outright.
type WoundSeverity int

const (
	WoundScratch WoundSeverity = iota
	WoundLight
	WoundSerious
	WoundCritical
)

// String returns the lowercase severity name used in wound causes and logs.
func (s WoundSeverity) String() string {
	switch s {
	case WoundScratch:
		return "scratch"
	case WoundLight:
		return "light"
	case WoundSerious:
		return "serious"
	case WoundCritical:
		return "critical"
	default:
		panic(fmt.Sprintf("character: WoundSeverity.String: unknown severity %d", int(s)))
	}
}

// Wound records a single injury: where it landed, how bad it is, the damage
// applied, and which weapon caused it.
type Wound struct {
	Location   BodyPart
	Severity   WoundSeverity
	Damage     int
	WeaponName string // wound-description phrase, e.g. "9mm round"
	WeaponID   string
	Cause      string // free text, e.g. "9mm round (stray)"
}
