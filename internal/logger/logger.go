package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide sugared logger. It is a no-op until
// Initialize is called so packages can log safely during early startup.
var Log = zap.NewNop().Sugar()

// Initialize builds the global logger at the given level ("debug",
// "info", "warn", "error").
func Initialize(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = l.Sugar()
	return nil
}

// Sync flushes any buffered log entries. Safe to defer from main.
func Sync() {
	_ = Log.Sync()
}
