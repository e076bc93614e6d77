// Package config loads simulator settings from defaults, an optional YAML
// file and GOCUBE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/gocube_sim/internal/engine"
	"github.com/SeamusWaldron/gocube_sim/internal/solver"
)

// Config is the full simulator configuration.
type Config struct {
	// Animation contains turn timing settings.
	Animation AnimationConfig `yaml:"animation"`

	// Shuffle contains scramble settings.
	Shuffle ShuffleConfig `yaml:"shuffle"`

	// Solver contains solving collaborator settings.
	Solver SolverConfig `yaml:"solver"`

	// Engine contains orchestration settings.
	Engine EngineConfig `yaml:"engine"`

	// Storage contains persistence settings.
	Storage StorageConfig `yaml:"storage"`

	// Log contains logging settings.
	Log LogConfig `yaml:"log"`

	// Metrics contains the Prometheus endpoint settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// AnimationConfig sets how long each kind of turn is animated.
type AnimationConfig struct {
	Turn      time.Duration `yaml:"turn" env:"GOCUBE_TURN_DURATION"`
	Undo      time.Duration `yaml:"undo" env:"GOCUBE_UNDO_DURATION"`
	Shuffle   time.Duration `yaml:"shuffle" env:"GOCUBE_SHUFFLE_DURATION"`
	Solve     time.Duration `yaml:"solve" env:"GOCUBE_SOLVE_DURATION"`
	FrameRate int           `yaml:"frame_rate" env:"GOCUBE_FRAME_RATE"`
}

// ShuffleConfig controls scrambles.
type ShuffleConfig struct {
	Count int `yaml:"count" env:"GOCUBE_SHUFFLE_COUNT"`
}

// SolverConfig selects the solving strategy.
type SolverConfig struct {
	Strategy string `yaml:"strategy" env:"GOCUBE_SOLVER"`
	MaxDepth int    `yaml:"max_depth" env:"GOCUBE_SOLVER_MAX_DEPTH"`
}

// EngineConfig controls how concurrent requests are handled.
type EngineConfig struct {
	BusyPolicy string `yaml:"busy_policy" env:"GOCUBE_BUSY_POLICY"`
}

// StorageConfig locates the session database.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"GOCUBE_DB"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level" env:"GOCUBE_LOG_LEVEL"`
	File  string `yaml:"file" env:"GOCUBE_LOG_FILE"`
}

// MetricsConfig controls the metrics endpoint. An empty address disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"GOCUBE_METRICS_ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	d := engine.DefaultDurations()
	return Config{
		Animation: AnimationConfig{
			Turn:      d.Turn,
			Undo:      d.Undo,
			Shuffle:   d.Shuffle,
			Solve:     d.Solve,
			FrameRate: 60,
		},
		Shuffle: ShuffleConfig{Count: engine.DefaultShuffleCount},
		Solver: SolverConfig{
			Strategy: string(solver.StrategySearch),
			MaxDepth: solver.DefaultMaxDepth,
		},
		Engine: EngineConfig{BusyPolicy: engine.PolicyReject.String()},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.gocube_sim/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".gocube_sim", "config.yaml"), nil
}

// Load builds the configuration: defaults, then the YAML file at path,
// then environment variables. An empty path means DefaultPath, which may
// be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error
	for name, d := range map[string]time.Duration{
		"animation.turn":    c.Animation.Turn,
		"animation.undo":    c.Animation.Undo,
		"animation.shuffle": c.Animation.Shuffle,
		"animation.solve":   c.Animation.Solve,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	if c.Animation.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("animation.frame_rate must be positive, got %d", c.Animation.FrameRate))
	}
	if c.Shuffle.Count <= 0 {
		errs = append(errs, fmt.Errorf("shuffle.count must be positive, got %d", c.Shuffle.Count))
	}
	if c.Solver.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("solver.max_depth must be positive, got %d", c.Solver.MaxDepth))
	}
	if _, err := solver.ParseStrategy(c.Solver.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := engine.ParsePolicy(c.Engine.BusyPolicy); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Durations returns the animation timings in engine form.
func (c Config) Durations() engine.Durations {
	return engine.Durations{
		Turn:    c.Animation.Turn,
		Undo:    c.Animation.Undo,
		Shuffle: c.Animation.Shuffle,
		Solve:   c.Animation.Solve,
	}
}
