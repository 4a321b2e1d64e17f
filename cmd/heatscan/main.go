// SPDX-License-Identifier: MIT

// Command heatscan serves, plays or scripts the build-plate scanning game.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/heatscan/config"
	"github.com/katalvlaran/heatscan/game"
	"github.com/katalvlaran/heatscan/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "heatscan",
		Short: "Laser scan-order game on a simulated build plate",
		Long: `heatscan simulates heat diffusion on a powder-bed build plate while a
player chooses the order in which macro tiles are scanned by the laser.

The goal is a plate that is as uniformly heated as possible once every
tile has been scanned.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (overrides config)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newPlayCmd(),
		newRunCmd(),
	)

	return rootCmd
}

// loadConfig resolves the config file, environment and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, w)
}

// gameFactory returns a constructor for games sharing one operator cache.
func gameFactory(cfg *config.Config, log *slog.Logger) func() *game.Game {
	cache := game.NewOperatorCache(log)
	return func() *game.Game {
		return game.New(
			game.WithMaterial(cfg.Material),
			game.WithMaxSize(cfg.Game.MaxSize),
			game.WithCache(cache),
			game.WithLogger(log),
		)
	}
}
