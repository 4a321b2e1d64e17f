// SPDX-License-Identifier: MIT
package simulation

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/heatscan/geometry"
)

// Projection is Cb: it subtracts the mean of the fine field and drops
// the ambient slots. It stores only the field length.
type Projection struct {
	n int
}

// NewProjection returns the projection for g's fine field.
func NewProjection(g geometry.Grid) Projection {
	return Projection{n: g.FineCells}
}

// Apply writes Cb·x into dst. len(dst) must equal len(x) and both must
// cover at least the fine field.
// Complexity: O(len(x)).
func (p Projection) Apply(dst, x []float64) {
	field := x[:p.n]
	mean := floats.Sum(field) / float64(p.n)
	copy(dst, field)
	floats.AddConst(-mean, dst[:p.n])
	for i := p.n; i < len(dst); i++ {
		dst[i] = 0
	}
}

// Norm returns ‖Cb·x‖₂. The ambient slots project to zero, so only the
// fine field is materialized.
func (p Projection) Norm(x []float64) float64 {
	buf := make([]float64, p.n)
	p.Apply(buf, x[:p.n])

	return floats.Norm(buf, 2)
}

// Map average-pools the fine field with kernel and stride s into the
// s×s board.
// Complexity: O(FineCells).
func (s *Session) Map() [][]float64 {
	g := s.pass.Grid
	out := make([][]float64, g.Size)
	inv := 1 / float64(g.Size*g.Size)
	for i := range out {
		out[i] = make([]float64, g.Size)
	}
	for r := 0; r < g.FineDim; r++ {
		row := s.state[r*g.FineDim : (r+1)*g.FineDim]
		dst := out[r/g.Size]
		for c, v := range row {
			dst[c/g.Size] += v
		}
	}
	for i := range out {
		floats.Scale(inv, out[i])
	}

	return out
}

// FineField returns the FineDim×FineDim temperature field.
func (s *Session) FineField() [][]float64 {
	g := s.pass.Grid
	out := make([][]float64, g.FineDim)
	for r := range out {
		out[r] = make([]float64, g.FineDim)
		copy(out[r], s.state[r*g.FineDim:(r+1)*g.FineDim])
	}

	return out
}

// Accuracy returns ‖Cb·state‖₂ / Tm / s². Lower means a more uniform
// field; a fresh session scores 0.
func (s *Session) Accuracy() float64 {
	g := s.pass.Grid

	return s.proj.Norm(s.state) / g.Material.MeltTemp / float64(g.Size*g.Size)
}

// Status is the derived view returned to hosts.
type Status struct {
	TemperatureMap [][]float64 `json:"temperatureMap"`
	Complete       bool        `json:"complete"`
	Accuracy       float64     `json:"accuracy"`
}

// Status snapshots the derived quantities of the session.
func (s *Session) Status() Status {
	return Status{
		TemperatureMap: s.Map(),
		Complete:       s.Complete(),
		Accuracy:       s.Accuracy(),
	}
}
