// SPDX-License-Identifier: MIT
// Package sparse - linear-algebra kernels on CSC operands.
//
// Purpose:
//   - Provide the products and sums needed to assemble and compose the
//     heat operators without ever materializing a dense FineCells² block.
//
// Notes:
//   - Every kernel allocates a fresh result; operands are never mutated.
//   - Results are canonical (ascending rows per column, no explicit zeros),
//     so repeated composition stays deterministic.

package sparse

import (
	"fmt"
	"math"
	"sort"
)

// Operation tags for unified error wrapping.
const (
	opAdd    = "Add"
	opScale  = "Scale"
	opMul    = "Mul"
	opKron   = "Kron"
	opMulVec = "MulVec"
)

// Add returns a + b.
//
// Implementation:
//   - Stage 1: ValidateSameShape.
//   - Stage 2: merge the two sorted row lists of every column.
//
// Complexity:
//   - Time O(nnz(a)+nnz(b)), Space O(nnz(a)+nnz(b)).
func Add(a, b *CSC) (*CSC, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, sparseErrorf(opAdd, err)
	}
	colPtr := make([]int, a.c+1)
	rowIdx := make([]int, 0, len(a.data)+len(b.data))
	data := make([]float64, 0, len(a.data)+len(b.data))

	var j, pa, pb, ea, eb int
	var v float64
	var row int
	for j = 0; j < a.c; j++ {
		pa, ea = a.colPtr[j], a.colPtr[j+1]
		pb, eb = b.colPtr[j], b.colPtr[j+1]
		for pa < ea || pb < eb {
			switch {
			case pb >= eb || (pa < ea && a.rowIdx[pa] < b.rowIdx[pb]):
				row, v = a.rowIdx[pa], a.data[pa]
				pa++
			case pa >= ea || b.rowIdx[pb] < a.rowIdx[pa]:
				row, v = b.rowIdx[pb], b.data[pb]
				pb++
			default: // same row in both operands
				row, v = a.rowIdx[pa], a.data[pa]+b.data[pb]
				pa++
				pb++
			}
			if v != 0 {
				rowIdx = append(rowIdx, row)
				data = append(data, v)
			}
		}
		colPtr[j+1] = len(data)
	}

	return &CSC{r: a.r, c: a.c, colPtr: colPtr, rowIdx: rowIdx, data: data}, nil
}

// Scale returns alpha*m. alpha == 0 yields an empty matrix of the same shape.
// Complexity: O(nnz).
func Scale(m *CSC, alpha float64) (*CSC, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, sparseErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, sparseErrorf(opScale, ErrNaNInf)
	}
	if alpha == 0 {
		return Zeros(m.r, m.c)
	}
	colPtr := make([]int, len(m.colPtr))
	rowIdx := make([]int, len(m.rowIdx))
	data := make([]float64, len(m.data))
	copy(colPtr, m.colPtr)
	copy(rowIdx, m.rowIdx)
	for p, v := range m.data {
		data[p] = alpha * v
	}

	return &CSC{r: m.r, c: m.c, colPtr: colPtr, rowIdx: rowIdx, data: data}, nil
}

// Mul returns the product a·b (Gustavson's algorithm, column by column).
//
// Implementation:
//   - Stage 1: ValidateMulCompatible.
//   - Stage 2: for each column j of b, scatter b[k,j]·a[:,k] into a dense
//     accumulator indexed by row, remembering touched rows via a marker.
//   - Stage 3: sort touched rows, gather non-zeros, reset accumulator.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf when the product
//     overflows to a non-finite value.
//
// Complexity:
//   - Time O(flops + Σ_j t_j log t_j), Space O(a.r + nnz(result)).
func Mul(a, b *CSC) (*CSC, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, sparseErrorf(opMul, err)
	}
	acc := make([]float64, a.r)
	mark := make([]int, a.r)
	for i := range mark {
		mark[i] = -1
	}
	touched := make([]int, 0, a.r)

	colPtr := make([]int, b.c+1)
	rowIdx := make([]int, 0, len(a.data)+len(b.data))
	data := make([]float64, 0, len(a.data)+len(b.data))

	var j, pb, pa, k, i int
	var bkj float64
	for j = 0; j < b.c; j++ {
		touched = touched[:0]
		for pb = b.colPtr[j]; pb < b.colPtr[j+1]; pb++ {
			k, bkj = b.rowIdx[pb], b.data[pb]
			for pa = a.colPtr[k]; pa < a.colPtr[k+1]; pa++ {
				i = a.rowIdx[pa]
				if mark[i] != j {
					mark[i] = j
					acc[i] = 0
					touched = append(touched, i)
				}
				acc[i] += a.data[pa] * bkj
			}
		}
		sort.Ints(touched)
		for _, i = range touched {
			if acc[i] == 0 {
				continue
			}
			if math.IsNaN(acc[i]) || math.IsInf(acc[i], 0) {
				return nil, fmt.Errorf("%s: column %d: %w", opMul, j, ErrNaNInf)
			}
			rowIdx = append(rowIdx, i)
			data = append(data, acc[i])
		}
		colPtr[j+1] = len(data)
	}

	return &CSC{r: a.r, c: b.c, colPtr: colPtr, rowIdx: rowIdx, data: data}, nil
}

// Kron returns the Kronecker product a ⊗ b of shape (a.r·b.r)×(a.c·b.c).
// Entry (ia·b.r+ib, ja·b.c+jb) = a[ia,ja]·b[ib,jb].
//
// Complexity:
//   - Time O(nnz(a)·nnz(b)), Space O(nnz(a)·nnz(b)).
func Kron(a, b *CSC) (*CSC, error) {
	if a == nil || b == nil {
		return nil, sparseErrorf(opKron, ErrNilMatrix)
	}
	rows, cols := a.r*b.r, a.c*b.c
	colPtr := make([]int, cols+1)
	rowIdx := make([]int, 0, len(a.data)*len(b.data))
	data := make([]float64, 0, len(a.data)*len(b.data))

	// Column ja·b.c+jb collects a[:,ja] blocks scaled by b[:,jb]; iterating
	// a's rows outermost keeps the emitted rows ascending.
	var ja, jb, pa, pb int
	for ja = 0; ja < a.c; ja++ {
		for jb = 0; jb < b.c; jb++ {
			for pa = a.colPtr[ja]; pa < a.colPtr[ja+1]; pa++ {
				for pb = b.colPtr[jb]; pb < b.colPtr[jb+1]; pb++ {
					rowIdx = append(rowIdx, a.rowIdx[pa]*b.r+b.rowIdx[pb])
					data = append(data, a.data[pa]*b.data[pb])
				}
			}
			colPtr[ja*b.c+jb+1] = len(data)
		}
	}

	return &CSC{r: rows, c: cols, colPtr: colPtr, rowIdx: rowIdx, data: data}, nil
}

// MulVec returns y = m·x.
// Complexity: Time O(nnz + r), Space O(r).
func MulVec(m *CSC, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, sparseErrorf(opMulVec, err)
	}
	y := make([]float64, m.r)
	if err := MulVecTo(y, m, x); err != nil {
		return nil, err
	}

	return y, nil
}

// MulVecTo writes m·x into dst (len(dst) == m.Rows()). dst must not alias x.
//
// Implementation:
//   - Stage 1: validate lengths.
//   - Stage 2: zero dst, then scatter x[j]·m[:,j] column by column.
//
// Complexity: Time O(nnz + r), Space O(1).
func MulVecTo(dst []float64, m *CSC, x []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return sparseErrorf(opMulVec, err)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return sparseErrorf(opMulVec, err)
	}
	if err := ValidateVecLen(dst, m.r); err != nil {
		return sparseErrorf(opMulVec, err)
	}
	for i := range dst {
		dst[i] = 0
	}
	var j, p int
	var xj float64
	for j = 0; j < m.c; j++ {
		xj = x[j]
		if xj == 0 {
			continue // skip zero multiplications
		}
		for p = m.colPtr[j]; p < m.colPtr[j+1]; p++ {
			dst[m.rowIdx[p]] += m.data[p] * xj
		}
	}

	return nil
}
