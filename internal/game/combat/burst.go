package combat

// BurstState records one unit's in-progress burst or automatic string.
type BurstState struct {
	// Automatic is true for automatic fire, false for a fixed burst.
	Automatic bool
	// ShotsFired counts rounds already fired in the current string.
	ShotsFired int
}

// BurstTracker holds per-unit burst and automatic fire state. The hit
// calculator consults it for the follow-on-shot penalty; cease-fire and
// incapacitation clear it.
type BurstTracker struct {
	states map[int]*BurstState
}

// NewBurstTracker creates an empty tracker.
func NewBurstTracker() *BurstTracker {
	return &BurstTracker{states: make(map[int]*BurstState)}
}

// Record notes one round fired by the unit as part of a burst or
// automatic string.
//
// Postcondition: ShotsFired(unitID) is one higher than before.
func (b *BurstTracker) Record(unitID int, automatic bool) {
	st := b.states[unitID]
	if st == nil {
		st = &BurstState{}
		b.states[unitID] = st
	}
	st.Automatic = automatic
	st.ShotsFired++
}

// State returns the unit's current burst state, or nil when no string is
// in progress.
func (b *BurstTracker) State(unitID int) *BurstState {
	return b.states[unitID]
}

// ShotsFired returns how many rounds the unit's current string has fired.
func (b *BurstTracker) ShotsFired(unitID int) int {
	if st := b.states[unitID]; st != nil {
		return st.ShotsFired
	}
	return 0
}

// FollowOnShot reports whether the unit's next shot continues a string
// already in progress. Follow-on shots lose the aiming bonus and take a
// flat accuracy penalty.
func (b *BurstTracker) FollowOnShot(unitID int) bool {
	return b.ShotsFired(unitID) > 0
}

// Reset clears the unit's burst bookkeeping.
//
// Postcondition: FollowOnShot(unitID) == false.
func (b *BurstTracker) Reset(unitID int) {
	delete(b.states, unitID)
}
