// timeline2html converts a spreadsheet of dated events into self-contained
// HTML timelines: a horizontal lane view, a filterable vertical list, or both
// behind a view switch.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"timeline2html/internal/config"
	"timeline2html/internal/metrics"
)

var (
	// Global flags
	configFile  string
	debugMode   bool
	metricsFile string
	sheetName   string

	// Set by setup before any command runs
	cfg            *config.Config
	logger         *zap.Logger
	metricsManager *metrics.Manager
)

var rootCmd = &cobra.Command{
	Use:   "timeline2html",
	Short: "Render a spreadsheet of events as an HTML timeline",
	Long: `timeline2html reads events from an .xlsx or .csv sheet and writes one
self-contained HTML document per run. The document needs no network access
when opened.

Rows with unreadable cells are kept with default values; a sheet missing a
required column is rejected before anything is written.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file (default $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after each run")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Worksheet to read (default: first sheet)")
}

// setup loads the configuration, applies flag overrides and builds the
// logger and metrics shared by all commands.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if sheetName != "" {
		c.Input.Sheet = sheetName
	}
	if metricsFile != "" {
		c.MetricsFile = metricsFile
	}
	if debugMode {
		c.LogLevel = "debug"
	}

	l, err := newLogger(c.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, logger = c, l
	metricsManager = nil
	if c.MetricsFile != "" {
		metricsManager = metrics.NewManager(metrics.WithNamespace(c.MetricsNamespace))
	}
	logger.Debug("Configuration loaded",
		zap.String("config", configFile),
		zap.String("sheet", c.Input.Sheet),
		zap.String("scale", c.Render.Horizontal.Scale))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true
	return zc.Build()
}

// flushMetrics writes the metrics textfile when one is configured.
func flushMetrics() {
	if metricsManager == nil || cfg == nil || cfg.MetricsFile == "" {
		return
	}
	if err := metricsManager.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warn("Failed to write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
