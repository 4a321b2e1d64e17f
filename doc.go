// Package heatscan simulates a laser powder-bed build plate for a
// tile-selection game: the player picks the order in which macro tiles are
// scanned, and the plate heats up one full laser pass at a time.
//
// 🚀 What is heatscan?
//
//	A discretized 2D heat equation driven by a zigzag laser path:
//		• Geometry: s×s macro tiles over an s²×s² fine mesh
//		• Operators: sparse one-step operator A_ext with two ambient slots
//		• Scan passes: TileCount steps collapsed into one affine update (Ab, Bb)
//		• Sessions: move validation, temperature map, accuracy, completion
//		• Hosts: HTTP JSON API, terminal board, scripted CLI runs
//
// Packages:
//
//	geometry/   material constants, derived grid sizes and coefficients F, G, H
//	sparse/     compressed sparse column matrices (gonum mat.Matrix compatible)
//	scanpath/   row and column zigzag schedules as pure data
//	operator/   A_ext assembly and pass precomputation
//	simulation/ Session, MoveResult, Status, structural mean projection
//	game/       locked host slot, operator cache, uuid session registry
//	config/     YAML + environment configuration
//	logging/    leveled slog loggers
//	httpapi/    /api/init, /api/move, /api/status
//	tui/        tcell front-end
//	cmd/heatscan/ cobra CLI: serve, play, run, version
//
// Quick example (2×2 board, fine mesh 4×4):
//
//	tiles        fine cells of tile 1 (row zigzag)
//	┌───┬───┐    0 → 1
//	│ 1 │ 2 │        ↓
//	├───┼───┤    4 ← 5
//	│ 3 │ 4 │
//	└───┴───┘
//
//	go run ./cmd/heatscan run --size 2 1 4 2 3
package heatscan
