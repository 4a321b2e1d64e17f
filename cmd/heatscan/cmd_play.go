// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/heatscan/logging"
	"github.com/katalvlaran/heatscan/tui"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			size, _ := cmd.Flags().GetInt("size")
			if size == 0 {
				size = cfg.Game.DefaultSize
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("terminal: %w", err)
			}
			defer screen.Fini()

			// the screen owns the terminal; logs would corrupt it
			log := logging.Discard()
			g := gameFactory(cfg, log)()
			return tui.New(screen, g, size, log).Run(cmd.Context())
		},
	}
	cmd.Flags().Int("size", 0, "Board side length (default from config)")

	return cmd
}
