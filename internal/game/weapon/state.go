package weapon

// Canonical readiness-state names. Weapon YAML may define any subset; these
// constants cover the stages the engine reasons about by name.
const (
	StateHolstered   = "holstered"
	StateSheathed    = "sheathed"
	StateSlung       = "slung"
	StateDrawing     = "drawing"
	StateUnsheathing = "unsheathing"
	StateUnsling     = "unsling"
	StateReady       = "ready"
	StateMeleeReady  = "melee_ready"
	StateAiming      = "aiming"
	StateFiring      = "firing"
	StateRecovering  = "recovering"
	StateReloading   = "reloading"
)

// State is one stage in a weapon's readiness graph: the stage name, the
// stage that follows it, and how many ticks the stage takes at base speed.
// An empty Next marks a resting stage that progression stops in.
type State struct {
	Name  string `yaml:"name"`
	Next  string `yaml:"next"`
	Ticks int64  `yaml:"ticks"`
}

// IsPreparation reports whether the state is a weapon-preparation stage.
// Only preparation stages are shortened by character speed; aiming, firing,
// and recovery run at the weapon's fixed pace.
func (s State) IsPreparation() bool {
	switch s.Name {
	case StateDrawing, StateUnsheathing, StateUnsling, StateReady, StateMeleeReady:
		return true
	default:
		return false
	}
}

// IsHoldExcluded reports whether the state may never be used as a hold
// target. Firing, recovery, and reloading are transient stages a character
// cannot park a weapon in.
func (s State) IsHoldExcluded() bool {
	switch s.Name {
	case StateFiring, StateRecovering, StateReloading:
		return true
	default:
		return false
	}
}

// HoldStates returns the states of w that are legal hold targets, in graph
// order.
//
// Postcondition: no returned state is firing, recovering, or reloading.
func HoldStates(w *Weapon) []State {
	var out []State
	for _, s := range w.States {
		if !s.IsHoldExcluded() {
			out = append(out, s)
		}
	}
	return out
}
