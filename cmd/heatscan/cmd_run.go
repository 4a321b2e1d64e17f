// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/heatscan/simulation"
)

type moveRecord struct {
	Tile int `json:"tile"`
	simulation.MoveResult
}

type runReport struct {
	Size   int               `json:"size"`
	Moves  []moveRecord      `json:"moves"`
	Status simulation.Status `json:"status"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tile...]",
		Short: "Apply a list of moves and print the resulting status",
		Example: `  heatscan run --size 2 1 2 3 4
  heatscan run --json 5 1 9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			size, _ := cmd.Flags().GetInt("size")
			if size == 0 {
				size = cfg.Game.DefaultSize
			}
			tiles := make([]int, len(args))
			for i, a := range args {
				if tiles[i], err = strconv.Atoi(a); err != nil {
					return fmt.Errorf("tile %q: %w", a, err)
				}
			}

			log := newLogger(cfg, cmd.ErrOrStderr())
			g := gameFactory(cfg, log)()
			if _, err := g.Initialize(cmd.Context(), size); err != nil {
				return err
			}

			report := runReport{Size: size, Moves: make([]moveRecord, 0, len(tiles))}
			for _, t := range tiles {
				report.Moves = append(report.Moves, moveRecord{Tile: t, MoveResult: g.ApplyMove(t)})
			}
			report.Status, _ = g.QueryStatus()

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Int("size", 0, "Board side length (default from config)")

	return cmd
}

func printReport(w io.Writer, r runReport) error {
	for _, m := range r.Moves {
		if _, err := fmt.Fprintf(w, "tile %d: %s\n", m.Tile, m.Reason.Message()); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "map:")
	for _, row := range r.Status.TemperatureMap {
		for j, v := range row {
			if j > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%8.2f", v)
		}
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(w, "accuracy: %.6f\ncomplete: %t\n", r.Status.Accuracy, r.Status.Complete)
	return err
}
