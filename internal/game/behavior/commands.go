package behavior

// HesitationEnd clears a unit's hesitation flag once its end tick is
// reached. Scheduled under the unit's own id so an incapacitation purge
// removes it.
type HesitationEnd struct {
	UnitID int
}

// CommandName implements schedule.Command.
func (HesitationEnd) CommandName() string { return "hesitation-end" }

// BraveryRecovery decrements a unit's accumulated bravery failures after
// the penalty window runs out.
type BraveryRecovery struct {
	UnitID int
}

// CommandName implements schedule.Command.
func (BraveryRecovery) CommandName() string { return "bravery-recovery" }
