package engine

// UnitReport summarises one unit's run for the CLI.
type UnitReport struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Faction       int    `json:"faction"`
	Health        int    `json:"health"`
	Incapacitated bool   `json:"incapacitated"`

	AttacksAttempted        int `json:"attacks_attempted"`
	AttacksSuccessful       int `json:"attacks_successful"`
	RangedAttacksAttempted  int `json:"ranged_attacks_attempted"`
	RangedAttacksSuccessful int `json:"ranged_attacks_successful"`
	MeleeAttacksAttempted   int `json:"melee_attacks_attempted"`
	MeleeAttacksSuccessful  int `json:"melee_attacks_successful"`

	ScratchesInflicted int `json:"scratches_inflicted"`
	LightInflicted     int `json:"light_inflicted"`
	SeriousInflicted   int `json:"serious_inflicted"`
	CriticalInflicted  int `json:"critical_inflicted"`

	HeadshotsAttempted      int `json:"headshots_attempted"`
	HeadshotsSuccessful     int `json:"headshots_successful"`
	HeadshotIncapacitations int `json:"headshot_incapacitations"`
	TargetsIncapacitated    int `json:"targets_incapacitated"`
	WoundsReceived          int `json:"wounds_received"`
	BraveryFailures         int `json:"bravery_failures"`
}

// Report is the end-of-run summary across every placed unit.
type Report struct {
	RunID string       `json:"run_id"`
	Tick  int64        `json:"tick"`
	Units []UnitReport `json:"units"`
}

// Report snapshots the current state of every unit in placement order.
func (e *Engine) Report() Report {
	units := e.field.Units()
	rep := Report{
		RunID: e.runID,
		Tick:  e.clock.Now(),
		Units: make([]UnitReport, 0, len(units)),
	}
	for _, u := range units {
		c := u.Character
		rep.Units = append(rep.Units, UnitReport{
			ID:            u.ID,
			Name:          c.Name,
			Faction:       c.Faction,
			Health:        c.CurrentHealth,
			Incapacitated: c.IsIncapacitated(),

			AttacksAttempted:        c.AttacksAttempted,
			AttacksSuccessful:       c.AttacksSuccessful,
			RangedAttacksAttempted:  c.RangedAttacksAttempted,
			RangedAttacksSuccessful: c.RangedAttacksSuccessful,
			MeleeAttacksAttempted:   c.MeleeAttacksAttempted,
			MeleeAttacksSuccessful:  c.MeleeAttacksSuccessful,

			ScratchesInflicted: c.ScratchesInflicted,
			LightInflicted:     c.LightInflicted,
			SeriousInflicted:   c.SeriousInflicted,
			CriticalInflicted:  c.CriticalInflicted,

			HeadshotsAttempted:      c.HeadshotsAttempted,
			HeadshotsSuccessful:     c.HeadshotsSuccessful,
			HeadshotIncapacitations: c.HeadshotIncapacitations,
			TargetsIncapacitated:    c.TargetsIncapacitated,
			WoundsReceived:          c.WoundsReceived,
			BraveryFailures:         c.BraveryFailures,
		})
	}
	return rep
}
