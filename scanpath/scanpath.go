// SPDX-License-Identifier: MIT
package scanpath

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/heatscan/geometry"
)

// ErrStepOutOfRange indicates a step or tile index outside the pass.
var ErrStepOutOfRange = errors.New("scanpath: step or tile out of range")

// Pattern selects the boustrophedon orientation of a tile.
type Pattern int

const (
	// RowZigzag sweeps rows, alternating direction per row.
	RowZigzag Pattern = iota
	// ColZigzag sweeps columns, alternating direction per column.
	ColZigzag
)

// String implements fmt.Stringer.
func (p Pattern) String() string {
	switch p {
	case RowZigzag:
		return "row-zigzag"
	case ColZigzag:
		return "col-zigzag"
	default:
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
}

// Path is the immutable laser schedule of one scan pass.
// Rows and Cols hold fine-cell offsets relative to a tile origin, one per
// step; Bases holds the origin of every tile.
type Path struct {
	Rows  []int
	Cols  []int
	Bases []int
	steps int
}

// New builds the schedule for grid g.
// Complexity: O(s² + TileCount) time and memory.
func New(g geometry.Grid) *Path {
	s := g.Size
	p := &Path{
		Rows:  make([]int, 0, s*s),
		Cols:  make([]int, 0, s*s),
		Bases: make([]int, g.TileCount),
		steps: g.TileCount,
	}
	var r, c int
	for r = 0; r < s; r++ {
		for c = 0; c < s; c++ {
			if r%2 == 0 {
				p.Rows = append(p.Rows, g.Index(r, c))
			} else {
				p.Rows = append(p.Rows, g.Index(r, s-1-c))
			}
		}
	}
	for c = 0; c < s; c++ {
		for r = 0; r < s; r++ {
			if c%2 == 0 {
				p.Cols = append(p.Cols, g.Index(r, c))
			} else {
				p.Cols = append(p.Cols, g.Index(s-1-r, c))
			}
		}
	}
	for t := range p.Bases {
		p.Bases[t] = g.TileOrigin(t)
	}

	return p
}

// Steps returns the number of elementary steps in one pass.
func (p *Path) Steps() int { return p.steps }

// PatternOf returns the orientation used by tile t.
func (p *Path) PatternOf(t int) Pattern {
	if t%2 == 0 {
		return RowZigzag
	}

	return ColZigzag
}

// For returns the fine-cell index under the laser for tile t at step k.
// Callers iterate within [0, Steps()) × [0, len(Bases)); use At for a
// checked variant.
func (p *Path) For(t, k int) int {
	if p.PatternOf(t) == RowZigzag {
		return p.Bases[t] + p.Rows[k]
	}

	return p.Bases[t] + p.Cols[k]
}

// At is the bounds-checked form of For.
func (p *Path) At(t, k int) (int, error) {
	if t < 0 || t >= len(p.Bases) || k < 0 || k >= p.steps {
		return 0, fmt.Errorf("scanpath: tile %d step %d: %w", t, k, ErrStepOutOfRange)
	}

	return p.For(t, k), nil
}

// Sequence returns the fine cells visited by tile t in pass order.
func (p *Path) Sequence(t int) ([]int, error) {
	if t < 0 || t >= len(p.Bases) {
		return nil, fmt.Errorf("scanpath: tile %d: %w", t, ErrStepOutOfRange)
	}
	seq := make([]int, p.steps)
	for k := range seq {
		seq[k] = p.For(t, k)
	}

	return seq, nil
}
