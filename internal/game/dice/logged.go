package dice

import "go.uber.org/zap"

// Logged wraps a Source and logs every roll at debug level. The engine
// installs it when the debug flag is set; it changes verbosity only, never
// the values rolled.
type Logged struct {
	src    Source
	logger *zap.Logger
}

// NewLogged creates a Logged source that delegates to src and logs each
// roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLogged(src Source, logger *zap.Logger) *Logged {
	if src == nil {
		panic("dice: NewLogged: src must not be nil")
	}
	if logger == nil {
		panic("dice: NewLogged: logger must not be nil")
	}
	return &Logged{src: src, logger: logger}
}

// Intn delegates to the wrapped source and logs the bound and result.
//
// Precondition: n > 0.
func (l *Logged) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("roll",
		zap.Int("bound", n),
		zap.Int("result", v),
	)
	return v
}

// Float64 delegates to the wrapped source and logs the result.
func (l *Logged) Float64() float64 {
	v := l.src.Float64()
	l.logger.Debug("roll",
		zap.Float64("result", v),
	)
	return v
}
