// SPDX-License-Identifier: MIT
package simulation

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/heatscan/geometry"
	"github.com/katalvlaran/heatscan/operator"
	"github.com/katalvlaran/heatscan/sparse"
)

// Session is one play-through on a fixed grid.
type Session struct {
	pass     *operator.Pass
	proj     Projection
	state    []float64
	scratch  []float64
	selected map[int]struct{}
}

// New starts a session on pass: every fine cell at the initial
// temperature, both ambient slots at the ambient temperature, nothing
// selected.
//
// Errors: sparse.ErrNilMatrix for a nil or incomplete pass,
// sparse.ErrDimensionMismatch when its operators disagree with its grid.
func New(pass *operator.Pass) (*Session, error) {
	if pass == nil || pass.Transition == nil || pass.Input == nil {
		return nil, fmt.Errorf("simulation.New: %w", sparse.ErrNilMatrix)
	}
	g := pass.Grid
	if r, c := pass.Transition.Dims(); r != g.StateLen || c != g.StateLen {
		return nil, fmt.Errorf("simulation.New: transition %dx%d: %w", r, c, sparse.ErrDimensionMismatch)
	}
	if r, c := pass.Input.Dims(); r != g.StateLen || c != g.TileCount {
		return nil, fmt.Errorf("simulation.New: input %dx%d: %w", r, c, sparse.ErrDimensionMismatch)
	}

	s := &Session{
		pass:     pass,
		proj:     NewProjection(g),
		state:    make([]float64, g.StateLen),
		scratch:  make([]float64, g.StateLen),
		selected: make(map[int]struct{}, g.TileCount),
	}
	for i := 0; i < g.FineCells; i++ {
		s.state[i] = g.Material.InitialTemp
	}
	for k := 0; k < geometry.AmbientSlots; k++ {
		s.state[g.AmbientIndex(k)] = g.Material.AmbientTemp
	}

	return s, nil
}

// Grid returns the discretization the session runs on.
func (s *Session) Grid() geometry.Grid { return s.pass.Grid }

// Move scans tile (1-based). Checks run in order AlreadySelected then
// OutOfRange; a rejected move leaves the session untouched.
// Complexity: O(nnz(Ab) + StateLen).
func (s *Session) Move(tile int) MoveResult {
	if s.IsSelected(tile) {
		return Rejected(AlreadySelected)
	}
	if tile < 1 || tile > s.pass.Grid.TileCount {
		return Rejected(OutOfRange)
	}

	// shapes were checked in New
	_ = sparse.MulVecTo(s.scratch, s.pass.Transition, s.state)
	rows, vals, _ := s.pass.Input.Column(tile - 1)
	for q, r := range rows {
		s.scratch[r] += vals[q]
	}
	s.state, s.scratch = s.scratch, s.state
	s.selected[tile] = struct{}{}

	return accepted()
}

// Complete reports whether every tile has been scanned.
func (s *Session) Complete() bool {
	return len(s.selected) >= s.pass.Grid.TileCount
}

// Selected returns the scanned tiles in ascending order.
func (s *Session) Selected() []int {
	out := make([]int, 0, len(s.selected))
	for t := range s.selected {
		out = append(out, t)
	}
	sort.Ints(out)

	return out
}

// IsSelected reports whether tile (1-based) was scanned.
func (s *Session) IsSelected(tile int) bool {
	_, ok := s.selected[tile]
	return ok
}

// State returns a copy of the state vector.
func (s *Session) State() []float64 {
	out := make([]float64, len(s.state))
	copy(out, s.state)

	return out
}
