// SPDX-License-Identifier: MIT
package operator

import (
	"context"
	"fmt"

	"github.com/katalvlaran/heatscan/geometry"
	"github.com/katalvlaran/heatscan/scanpath"
	"github.com/katalvlaran/heatscan/sparse"
)

// Pass is the immutable composite of one scan pass. It is safe to share
// between sessions of the same grid.
type Pass struct {
	Grid geometry.Grid

	// Elementary is A_ext, kept for diagnostics and step-wise replay.
	Elementary *sparse.CSC
	// Transition is Ab = A_ext^TileCount.
	Transition *sparse.CSC
	// Input is Bb; column t is the forcing of tile t+1.
	Input *sparse.CSC
	// Path is the laser schedule Input was accumulated from.
	Path *scanpath.Path
}

// Build assembles A_ext and the scan path for g and precomputes the pass.
func Build(ctx context.Context, g geometry.Grid) (*Pass, error) {
	aExt, err := Elementary(g)
	if err != nil {
		return nil, err
	}

	return Precompute(ctx, g, aExt, scanpath.New(g))
}

// Precompute collapses TileCount elementary steps into (Ab, Bb).
//
// Implementation:
//   - Stage 1: Ab := I, one dense accumulator column per tile.
//   - Stage 2: for p = 1..n, k = n-p: add G·Ab[:, cell(t,k)] to column t
//     for every tile, then Ab := Ab·A_ext. Ab equals A_ext^(p-1) while
//     step k is read, which is exactly the propagation still ahead of a
//     dose deposited at step k.
//   - Stage 3: compress the accumulators into Bb.
//
// Errors:
//   - ctx.Err() between steps; sparse.ErrNaNInf if the power diverges;
//     shape errors when aExt does not match g.
//
// Complexity:
//   - n sparse products plus O(n·TileCount·nnz(column)) accumulation;
//     memory O(nnz(Ab) + StateLen·TileCount).
func Precompute(ctx context.Context, g geometry.Grid, aExt *sparse.CSC, path *scanpath.Path) (*Pass, error) {
	if err := sparse.ValidateSquare(aExt); err != nil {
		return nil, fmt.Errorf("Precompute: %w", err)
	}
	if aExt.Rows() != g.StateLen || path == nil || path.Steps() != g.TileCount || len(path.Bases) != g.TileCount {
		return nil, fmt.Errorf("Precompute: %w", sparse.ErrDimensionMismatch)
	}

	ab, err := sparse.Identity(g.StateLen)
	if err != nil {
		return nil, fmt.Errorf("Precompute: %w", err)
	}
	acc := make([][]float64, g.TileCount)
	for t := range acc {
		acc[t] = make([]float64, g.StateLen)
	}

	n := path.Steps()
	var rows []int
	var vals []float64
	for p := 1; p <= n; p++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		k := n - p
		for t := 0; t < g.TileCount; t++ {
			if rows, vals, err = ab.Column(path.For(t, k)); err != nil {
				return nil, fmt.Errorf("Precompute: tile %d step %d: %w", t, k, err)
			}
			dst := acc[t]
			for q, r := range rows {
				dst[r] += g.G * vals[q]
			}
		}
		if ab, err = sparse.Mul(ab, aExt); err != nil {
			return nil, fmt.Errorf("Precompute: step %d: %w", p, err)
		}
	}

	bb, err := sparse.FromDenseColumns(g.StateLen, acc)
	if err != nil {
		return nil, fmt.Errorf("Precompute: %w", err)
	}

	return &Pass{Grid: g, Elementary: aExt, Transition: ab, Input: bb, Path: path}, nil
}

// Replay applies the pass for tile t (0-based) to x the slow way: n
// elementary steps, each diffusing the field and then depositing G on the
// cell under the laser. It returns a new vector and is used to cross-check
// the composite operators.
func (ps *Pass) Replay(x []float64, t int) ([]float64, error) {
	if t < 0 || t >= ps.Grid.TileCount {
		return nil, fmt.Errorf("Replay: tile %d: %w", t, sparse.ErrOutOfRange)
	}
	seq, err := ps.Path.Sequence(t)
	if err != nil {
		return nil, fmt.Errorf("Replay: %w", err)
	}
	cur := make([]float64, len(x))
	copy(cur, x)
	next := make([]float64, len(x))
	for _, cell := range seq {
		if err := sparse.MulVecTo(next, ps.Elementary, cur); err != nil {
			return nil, fmt.Errorf("Replay: %w", err)
		}
		next[cell] += ps.Grid.G
		cur, next = next, cur
	}

	return cur, nil
}

// Stats summarizes operator sizes for logs.
type Stats struct {
	StateLen      int
	TileCount     int
	ElementaryNNZ int
	TransitionNNZ int
	InputNNZ      int
	// TransitionMaxAbs is the largest |Ab_ij|; values above one flag an
	// unstable time step.
	TransitionMaxAbs float64
}

// Stats returns the operator sizes of the pass.
func (ps *Pass) Stats() Stats {
	return Stats{
		StateLen:      ps.Grid.StateLen,
		TileCount:     ps.Grid.TileCount,
		ElementaryNNZ: ps.Elementary.NNZ(),
		TransitionNNZ: ps.Transition.NNZ(),
		InputNNZ:      ps.Input.NNZ(),

		TransitionMaxAbs: ps.Transition.MaxAbs(),
	}
}
