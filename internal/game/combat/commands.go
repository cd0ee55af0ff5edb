package combat

// RangedImpact delivers a projectile at the end of its flight. The hit was
// already rolled at fire time; the command carries the result to the tick
// where it takes effect.
type RangedImpact struct {
	ShooterID int
	TargetID  int
	WeaponID  string
	Hit       HitResult
}

// CommandName identifies the command for dispatch and logging.
func (RangedImpact) CommandName() string { return "ranged-impact" }

// MeleeImpact lands a melee strike. The roll happens at resolution time,
// not at scheduling time.
type MeleeImpact struct {
	AttackerID int
	TargetID   int
	WeaponID   string
}

// CommandName identifies the command for dispatch and logging.
func (MeleeImpact) CommandName() string { return "melee-impact" }

// WeaponTransition advances a unit's weapon to the named readiness state.
type WeaponTransition struct {
	UnitID  int
	ToState string
}

// CommandName identifies the command for dispatch and logging.
func (WeaponTransition) CommandName() string { return "weapon-transition" }
