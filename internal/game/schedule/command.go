package schedule

// Command is a unit of deferred simulation work. Commands are small tagged
// values holding unit ids and plain data, never closures; the engine
// dispatches them by concrete type when their due tick arrives. Packages
// that schedule work define their own command types next to the code that
// handles them.
type Command interface {
	// CommandName returns a stable identifier used in logs and tests.
	CommandName() string
}

// ClearHitHighlight reverts a unit's render color after the wound flash.
// It is always scheduled under WorldOwner so an incapacitation purge of the
// wounded unit's events leaves the flash cleanup intact.
type ClearHitHighlight struct {
	UnitID int
}

// CommandName implements Command.
func (ClearHitHighlight) CommandName() string { return "clear-hit-highlight" }

// ClearFiringHighlight clears a unit's muzzle-flash flag.
type ClearFiringHighlight struct {
	UnitID int
}

// CommandName implements Command.
func (ClearFiringHighlight) CommandName() string { return "clear-firing-highlight" }
