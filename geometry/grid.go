// SPDX-License-Identifier: MIT
package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration indicates a size below 1 or an unusable material.
var ErrInvalidConfiguration = errors.New("geometry: invalid configuration")

// AmbientSlots is the number of auxiliary state entries appended after the
// fine-grid temperatures.
const AmbientSlots = 2

// Grid is the immutable discretization derived from one size parameter.
// Size is the macro board side s; every other dimension follows from it.
type Grid struct {
	Size      int // s, macro board side length
	FineDim   int // s², fine mesh side length
	FineCells int // FineDim², number of fine cells
	TileCount int // s², number of selectable tiles
	StateLen  int // FineCells + AmbientSlots

	F float64 // diffusion number
	G float64 // source number
	H float64 // convective-loss number

	Material Material
}

// New derives a Grid for size s with material m.
// Returns ErrInvalidConfiguration (wrapped) when s < 1 or m is invalid.
// Complexity: O(1).
func New(size int, m Material) (Grid, error) {
	if size < 1 {
		return Grid{}, fmt.Errorf("size %d: %w", size, ErrInvalidConfiguration)
	}
	if err := m.Validate(); err != nil {
		return Grid{}, err
	}
	fineDim := size * size
	g := Grid{
		Size:      size,
		FineDim:   fineDim,
		FineCells: fineDim * fineDim,
		TileCount: size * size,
		Material:  m,
	}
	g.StateLen = g.FineCells + AmbientSlots
	g.F, g.G, g.H = m.Coefficients()

	return g, nil
}

// Index maps fine cell (row, col) to its row-major state index.
// Complexity: O(1).
func (g Grid) Index(row, col int) int {
	return row*g.FineDim + col
}

// Coordinate converts a fine-cell index back to (row, col).
// Complexity: O(1).
func (g Grid) Coordinate(idx int) (row, col int) {
	return idx / g.FineDim, idx % g.FineDim
}

// TileOrigin returns the fine-cell index of the top-left corner of tile t
// (0-based, row-major over the s×s board).
func (g Grid) TileOrigin(t int) int {
	return g.Index(t/g.Size*g.Size, t%g.Size*g.Size)
}

// TileOf returns the 0-based tile containing fine cell idx.
func (g Grid) TileOf(idx int) int {
	row, col := g.Coordinate(idx)

	return row/g.Size*g.Size + col/g.Size
}

// AmbientIndex returns the state index of ambient slot k (0 or 1).
func (g Grid) AmbientIndex(k int) int {
	return g.FineCells + k
}
