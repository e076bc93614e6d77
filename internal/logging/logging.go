// Package logging builds the zap logger used by the gocube commands.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger at level writing JSON lines to file. With no file
// it writes console output to stderr, unless quiet is set, in which case
// logs are discarded. The TUI sets quiet because it owns the terminal.
func New(level, file string, quiet bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if file == "" {
		if quiet {
			return zap.NewNop(), nil
		}
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.DisableStacktrace = true
		return cfg.Build()
	}

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{file}
	return cfg.Build()
}
