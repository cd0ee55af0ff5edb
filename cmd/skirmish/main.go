// Package main provides the skirmish binary that runs headless combat
// scenarios against the tick engine and emits a run report.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/config"
	"github.com/ashfall-games/skirmish/internal/game/dice"
	"github.com/ashfall-games/skirmish/internal/game/engine"
	"github.com/ashfall-games/skirmish/internal/game/scenario"
	"github.com/ashfall-games/skirmish/internal/game/weapon"
	"github.com/ashfall-games/skirmish/internal/game/world"
	"github.com/ashfall-games/skirmish/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/skirmish.yaml", "path to configuration file")
	scenarioPath := flag.String("scenario", "", "path to a Lua scenario script; empty = built-in demo skirmish")
	seed := flag.Int64("seed", 0, "random seed; non-zero overrides config, 0 keeps config (config 0 = crypto randomness)")
	ticks := flag.Int("ticks", 0, "ticks the built-in demo runs; 0 = config max_ticks")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}
	if *ticks > 0 {
		cfg.Sim.MaxTicks = *ticks
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src dice.Source
	if cfg.Sim.Seed != 0 {
		src = dice.NewSeededSource(cfg.Sim.Seed)
		logger.Info("using seeded randomness", zap.Int64("seed", cfg.Sim.Seed))
	} else {
		src = dice.NewCryptoSource()
	}
	if cfg.Sim.Debug {
		src = dice.NewLogged(src, logger)
	}

	contentStart := time.Now()
	weapons, err := weapon.LoadRegistry(cfg.Content.WeaponsDir)
	if err != nil {
		logger.Fatal("loading weapon definitions", zap.Error(err))
	}
	factions, err := world.LoadFactions(cfg.Content.FactionsDir)
	if err != nil {
		logger.Fatal("loading faction definitions", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("weapons", len(weapons.All())),
		zap.Int("factions", len(factions)),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	eng := engine.NewEngine(weapons, factions, src, logger)
	logger.Info("engine initialized",
		zap.String("run_id", eng.RunID()),
		zap.Duration("startup", time.Since(start)),
	)

	var rep engine.Report
	if *scenarioPath != "" {
		runner := scenario.NewRunner(eng, scenario.DefaultInstructionLimit, logger)
		rep, err = runner.Run(*scenarioPath)
		if err != nil {
			logger.Fatal("running scenario", zap.Error(err))
		}
	} else {
		rep = runDemo(eng, cfg.Sim.MaxTicks, logger)
	}

	logger.Info("run complete",
		zap.String("run_id", rep.RunID),
		zap.Int64("final_tick", rep.Tick),
		zap.Int("units", len(rep.Units)),
	)
	for _, u := range rep.Units {
		logger.Info("unit report",
			zap.Int("unit", u.ID),
			zap.String("name", u.Name),
			zap.Int("health", u.Health),
			zap.Bool("incapacitated", u.Incapacitated),
			zap.Int("attacks_attempted", u.AttacksAttempted),
			zap.Int("attacks_successful", u.AttacksSuccessful),
			zap.Int("wounds_received", u.WoundsReceived),
			zap.Int("targets_incapacitated", u.TargetsIncapacitated),
		)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		logger.Fatal("encoding report", zap.Error(err))
	}
}

// runDemo stages a small two-front skirmish so the binary produces a
// meaningful report without a scenario script: a sabre-against-knife duel
// at arm's length and a pistol-against-submachine-gun exchange at sixty
// feet. Orders repeat every two seconds; units that are hesitating or
// already down simply refuse, and the run ends early once either faction
// has no one left standing.
func runDemo(eng *engine.Engine, maxTicks int, logger *zap.Logger) engine.Report {
	type spawnOrder struct {
		name    string
		faction int
		x, y    float64
		ranged  string
		melee   string
	}
	spawns := []spawnOrder{
		{"Alice", 1, 100, 100, "", "mel_cavalry_sabre"},
		{"Drake", 2, 142, 100, "", "mel_bowie_knife"},
		{"Vernon", 1, 100, 550, "wpn_colt_peacemaker", ""},
		{"Cassidy", 2, 520, 550, "wpn_uzi", ""},
	}

	units := make([]*world.Unit, 0, len(spawns))
	for _, s := range spawns {
		u, err := eng.Spawn(s.name, s.faction, s.x, s.y, s.ranged, s.melee)
		if err != nil {
			logger.Fatal("spawning demo unit", zap.String("name", s.name), zap.Error(err))
		}
		units = append(units, u)
	}
	alice, drake, vernon, cassidy := units[0], units[1], units[2], units[3]

	for _, u := range units {
		if err := eng.ReadyWeapon(u.ID); err != nil {
			logger.Fatal("readying demo weapon", zap.Int("unit", u.ID), zap.Error(err))
		}
	}

	// A refused order is part of the fight, not a failure: hesitation and
	// incapacitation both make units decline.
	try := func(err error) {
		if err != nil {
			logger.Debug("order refused", zap.Error(err))
		}
	}
	factionStanding := func(id int) bool {
		for _, u := range units {
			if u.Character.Faction == id && !u.Character.IsIncapacitated() {
				return true
			}
		}
		return false
	}

	const volleyInterval = 120

	for now := eng.Now(); now < int64(maxTicks); now = eng.Tick() {
		if now%volleyInterval == 0 {
			if !alice.Character.IsIncapacitated() && !drake.Character.IsIncapacitated() {
				try(eng.MeleeAt(alice.ID, drake.ID, now))
				try(eng.MeleeAt(drake.ID, alice.ID, now))
			}
			if !cassidy.Character.IsIncapacitated() {
				try(eng.FireAt(vernon.ID, cassidy.ID, now))
			}
			if !vernon.Character.IsIncapacitated() {
				try(eng.FireAt(cassidy.ID, vernon.ID, now))
			}
		}
		if !factionStanding(1) || !factionStanding(2) {
			logger.Info("one side is down, ending demo", zap.Int64("tick", now))
			break
		}
	}
	return eng.Report()
}
