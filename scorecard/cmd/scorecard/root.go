package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tenpin/tenpin/scorecard/internal/config"
)

const defaultConfigFile = "config.yaml"

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "scorecard - ten-pin bowling score sheets",
	Long: `scorecard scores completed ten-pin bowling games from throw lists or
score sheet notation, and submits them to tenpin-server.

Throws are given as pin counts (10 7 3 9 0 ...) or in sheet notation
(X 7/ 9- ...), optionally separated by '|'.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the scorecard section of the config file. A missing
// default config.yaml yields the built-in defaults; a missing file named
// explicitly with --config is an error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err == nil {
		slog.Debug("scorecard: config loaded", "path", cfgFile, "server_endpoint", cfg.Scorecard.ServerEndpoint)
		return cfg, nil
	}
	if cfgFile == defaultConfigFile && errors.Is(err, fs.ErrNotExist) {
		slog.Debug("scorecard: no config file, using defaults", "path", cfgFile)
		return config.Default(), nil
	}
	return nil, err
}
