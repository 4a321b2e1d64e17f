// SPDX-License-Identifier: MIT
package operator

import (
	"fmt"

	"github.com/katalvlaran/heatscan/geometry"
	"github.com/katalvlaran/heatscan/sparse"
)

// edgeCoupling scales F into the conductive ambient slot. The scheme keeps
// the slot structurally but does not exchange heat through it.
const edgeCoupling = 0.0

// stencilNeighbours is the neighbour count of an interior 1D cell.
const stencilNeighbours = 2

// Stencil1D returns the FineDim×FineDim one-axis diffusion stencil with
// insulated (Neumann) ends: -2F inside, -F on the first and last cell, 0 on
// a single-cell axis, +F on both off-diagonals.
// Complexity: O(FineDim).
func Stencil1D(g geometry.Grid) (*sparse.CSC, error) {
	n := g.FineDim
	b, err := sparse.NewBuilder(n, n, 3*n)
	if err != nil {
		return nil, fmt.Errorf("Stencil1D: %w", err)
	}
	for i := 0; i < n; i++ {
		k := stencilNeighbours
		if i == 0 {
			k--
		}
		if i == n-1 {
			k--
		}
		if err = b.Add(i, i, -float64(k)*g.F); err != nil {
			return nil, fmt.Errorf("Stencil1D: %w", err)
		}
		if i > 0 {
			_ = b.Add(i, i-1, g.F) // in range by loop bounds
		}
		if i < n-1 {
			_ = b.Add(i, i+1, g.F)
		}
	}

	return b.Build()
}

// Interior returns A = I⊗L1 + L1⊗I + (1-H)·I over the FineCells mesh.
//
// Implementation:
//   - Stage 1: 1D stencil and FineDim identity.
//   - Stage 2: x-axis (I⊗L1) and y-axis (L1⊗I) Kronecker lifts.
//   - Stage 3: add the retained fraction (1-H) on the diagonal.
//
// Complexity: O(FineCells).
func Interior(g geometry.Grid) (*sparse.CSC, error) {
	l1, err := Stencil1D(g)
	if err != nil {
		return nil, err
	}
	id, err := sparse.Identity(g.FineDim)
	if err != nil {
		return nil, fmt.Errorf("Interior: %w", err)
	}
	ax, err := sparse.Kron(id, l1)
	if err != nil {
		return nil, fmt.Errorf("Interior: x-axis: %w", err)
	}
	ay, err := sparse.Kron(l1, id)
	if err != nil {
		return nil, fmt.Errorf("Interior: y-axis: %w", err)
	}
	lap, err := sparse.Add(ax, ay)
	if err != nil {
		return nil, fmt.Errorf("Interior: %w", err)
	}
	idFine, err := sparse.Identity(g.FineCells)
	if err != nil {
		return nil, fmt.Errorf("Interior: %w", err)
	}
	keep, err := sparse.Scale(idFine, 1-g.H)
	if err != nil {
		return nil, fmt.Errorf("Interior: %w", err)
	}

	return sparse.Add(lap, keep)
}

// Elementary returns A_ext, the StateLen×StateLen one-step operator with
// the two ambient slots appended.
// Complexity: O(FineCells).
func Elementary(g geometry.Grid) (*sparse.CSC, error) {
	a, err := Interior(g)
	if err != nil {
		return nil, err
	}
	b, err := sparse.NewBuilder(g.StateLen, g.StateLen, a.NNZ()+2*g.FineCells+geometry.AmbientSlots)
	if err != nil {
		return nil, fmt.Errorf("Elementary: %w", err)
	}
	if err = b.AddMatrix(a, 0, 0); err != nil {
		return nil, fmt.Errorf("Elementary: %w", err)
	}
	edge, conv := g.AmbientIndex(0), g.AmbientIndex(1)
	for i := 0; i < g.FineCells; i++ {
		_ = b.Add(i, edge, edgeCoupling*g.F)
		_ = b.Add(i, conv, g.H)
	}
	_ = b.Add(edge, edge, 1)
	_ = b.Add(conv, conv, 1)

	return b.Build()
}
