package scenario

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ashfall-games/skirmish/internal/game/engine"
)

// Runner executes one scenario script against the engine it was built
// over. Build a fresh engine per run; the script mutates it freely.
type Runner struct {
	engine    *engine.Engine
	instLimit int
	logger    *zap.Logger
}

// NewRunner creates a Runner over eng. instLimit bounds the Lua opcode
// budget; 0 uses DefaultInstructionLimit.
//
// Precondition: eng and logger must be non-nil.
func NewRunner(eng *engine.Engine, instLimit int, logger *zap.Logger) *Runner {
	if eng == nil {
		panic("scenario: NewRunner: precondition violated: eng must not be nil")
	}
	if logger == nil {
		panic("scenario: NewRunner: precondition violated: logger must not be nil")
	}
	return &Runner{engine: eng, instLimit: instLimit, logger: logger}
}

// Run executes the script at path and returns the engine's final report.
// Any script error, including engine refusals raised into Lua and a blown
// instruction budget, aborts the run.
func (r *Runner) Run(path string) (engine.Report, error) {
	L, cancel := NewSandboxedState(r.instLimit)
	defer cancel()
	defer L.Close()

	r.registerEngineModule(L)

	r.logger.Info("scenario starting",
		zap.String("script", path),
		zap.String("run_id", r.engine.RunID()),
	)
	if err := L.DoFile(path); err != nil {
		return engine.Report{}, fmt.Errorf("scenario: Runner.Run: %q: %w", path, err)
	}

	rep := r.engine.Report()
	r.logger.Info("scenario finished",
		zap.String("script", path),
		zap.Int64("tick", rep.Tick),
		zap.Int("units", len(rep.Units)),
	)
	return rep, nil
}
