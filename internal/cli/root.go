// Package cli implements the command-line interface for gocube.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/gocube_sim/internal/config"
	"github.com/SeamusWaldron/gocube_sim/internal/logging"
)

const version = "0.2.0"

var (
	// Global flags
	cfgPath     string
	dbPath      string
	metricsAddr string
	verbose     bool
	noRecord    bool

	// Loaded in PersistentPreRunE
	cfg    config.Config
	logger = zap.NewNop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gocube",
	Short: "Virtual 3x3x3 cube simulator",
	Long: `gocube - turn, shuffle, undo and solve a virtual Rubik's Cube.

Every layer turn is animated as a rigid rotation of the 27 pieces and
recorded in standard notation (R, U', F2 ...). Sessions are stored in a
local SQLite database so they can be listed and replayed, and a GoCube
smart cube can drive the virtual one over Bluetooth.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default: ~/.gocube_sim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.gocube_sim/gocube.db)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noRecord, "no-record", false, "Do not store this session")
}

// loadConfig applies defaults, the config file, environment and finally
// command-line flags, then builds the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Storage.DBPath = dbPath
	}
	if metricsAddr != "" {
		c.Metrics.Addr = metricsAddr
	}
	if verbose {
		c.Log.Level = "debug"
	}
	cfg = c

	// The TUI owns the terminal; without a log file its logs are dropped.
	quiet := cmd.Name() == playCmd.Name()
	l, err := logging.New(cfg.Log.Level, cfg.Log.File, quiet)
	if err != nil {
		return err
	}
	logger = l
	return nil
}
