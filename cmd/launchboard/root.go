package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tfkr-ae/launchboard"
)

// app carries the persistent flags and the state built from them before a
// subcommand runs.
type app struct {
	configDir string
	dataset   string
	logLevel  string
	format    string

	cfg    *launchboard.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "launchboard",
		Short: "Query launch outcomes by site and payload",
		Long: "Launchboard loads a table of historical rocket launches once and answers the\n" +
			"success-share and payload-vs-outcome queries behind the launch dashboard.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.Version = version

	f := rootCmd.PersistentFlags()
	f.StringVar(&a.configDir, "config-dir", "", "Directory holding config.yaml (built-in defaults when empty)")
	f.StringVar(&a.dataset, "dataset", "", "CSV file or snapshot to load (overrides dataset_path)")
	f.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log_level)")
	f.StringVar(&a.format, "format", formatTable, "Output format: table, markdown or json")

	rootCmd.AddCommand(
		newSitesCmd(a),
		newPieCmd(a),
		newScatterCmd(a),
		newSummaryCmd(a),
		newImportCmd(a),
		newStatsCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and builds the stderr logger.
func (a *app) setup(cmd *cobra.Command) error {
	switch a.format {
	case formatTable, formatMarkdown, formatJSON:
	default:
		return fmt.Errorf("unknown output format %q", a.format)
	}

	if a.configDir != "" {
		cfg, err := launchboard.LoadConfig(a.configDir)
		if err != nil {
			return err
		}
		a.cfg = cfg
	} else {
		a.cfg = launchboard.DefaultConfig()
	}

	levelName := a.cfg.LogLevel
	if a.logLevel != "" {
		levelName = a.logLevel
	}
	level, err := launchboard.ParseLevel(levelName)
	if err != nil {
		return err
	}

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// board loads the dataset and returns a ready Board.
func (a *app) board() (*launchboard.Board, error) {
	return launchboard.New(
		launchboard.WithConfig(a.cfg),
		launchboard.WithLogger(a.logger),
		launchboard.WithDataset(a.dataset),
	)
}
