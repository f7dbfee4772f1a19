// Package logger provides structured logging using Zap.
package logger

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar atomic.Pointer[zap.SugaredLogger]
	once  sync.Once
)

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder. For all other environments,
// it uses a human-readable console encoder. Debug entries are only emitted when verbose.
func Init(env string, verbose bool) {
	once.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
			cfg.DisableStacktrace = true
		}
		level := zapcore.InfoLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		cfg.Level = zap.NewAtomicLevelAt(level)

		base, err := cfg.Build()
		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}
		sugar.Store(base.Sugar())
	})
}

// Get returns the global sugared logger.
// Until Init is called it returns a no-op logger, so that library code stays silent.
func Get() *zap.SugaredLogger {
	if s := sugar.Load(); s != nil {
		return s
	}
	return zap.NewNop().Sugar()
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if s := sugar.Load(); s != nil {
		_ = s.Sync()
	}
}
