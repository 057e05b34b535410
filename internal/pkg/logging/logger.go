// Package logging builds the zap loggers used by the binaries.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger flavour and destination.
type Options struct {
	// Env is "production" (JSON) or "development" (console).
	Env string
	// Level overrides the default level when non-empty.
	Level string
	// Paths replaces stderr as the output when non-empty.
	Paths []string
}

// New creates a zap logger from opts.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	switch opts.Env {
	case "", "production":
		cfg = zap.NewProductionConfig()
	case "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", opts.Env)
	}

	if opts.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	if len(opts.Paths) > 0 {
		cfg.OutputPaths = opts.Paths
		cfg.ErrorOutputPaths = opts.Paths
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

// Sync flushes l, reporting failures through l itself.
func Sync(l *zap.Logger) {
	if err := l.Sync(); err != nil {
		l.Debug("failed to sync logger", zap.Error(err))
	}
}
