package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the process logger. Debug mode enables development output;
// otherwise only warnings and errors reach stderr, so the terminal UI stays
// clean. Persistence and transport internals are logged, never surfaced.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Nop returns a logger that discards everything. Used by tests and as the
// fallback when construction fails.
func Nop() *zap.Logger {
	return zap.NewNop()
}
