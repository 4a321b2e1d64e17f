// SPDX-License-Identifier: MIT
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/heatscan/game"
	"github.com/katalvlaran/heatscan/httpapi"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON game API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}
			log := newLogger(cfg, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := game.NewRegistry(gameFactory(cfg, log), cfg.Game.MaxSessions)
			srv := httpapi.NewServer(reg, httpapi.Options{
				AllowedOrigin: cfg.Server.AllowedOrigin,
				DefaultSize:   cfg.Game.DefaultSize,
				Logger:        log,
			})
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides config)")

	return cmd
}
