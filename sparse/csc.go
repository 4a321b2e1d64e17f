// SPDX-License-Identifier: MIT

// Package sparse - CSC storage & safe accessors.
//
// Purpose:
//   - Hold a matrix as three flat slices (colPtr, rowIdx, data).
//   - Expose read-only column views without copying (Column).
//   - Satisfy gonum's mat.Matrix so the rest of the ecosystem can read it.
//
// Complexity quicksheet:
//   - NewCSC: O(nnz) validation; At: O(log nnz(col)); Column: O(1); ToDense: O(r*c).

package sparse

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ---------- error context tags ----------

const (
	ctxNew    = "NewCSC"
	ctxColumn = "Column"
	ctxGet    = "Get"
)

// excerptEdge bounds String output for large operators.
const excerptEdge = 4

// sparseErrorf wraps err with an operation tag, preserving it for errors.Is.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// CSC is an immutable compressed sparse column matrix.
//   - r,c hold dimensions (rows, cols), both > 0.
//   - colPtr has length c+1; column j occupies [colPtr[j], colPtr[j+1]).
//   - rowIdx/data hold row indices (strictly ascending per column) and values.
type CSC struct {
	r, c   int
	colPtr []int
	rowIdx []int
	data   []float64
}

// Compile-time assertions for interface conformance.
var (
	_ mat.Matrix   = (*CSC)(nil)
	_ fmt.Stringer = (*CSC)(nil)
)

// NewCSC wraps already-compressed arrays into a CSC after validating them.
// The slices are owned by the returned matrix; callers must not mutate them.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0.
//   - Stage 2: validate colPtr length, monotonicity and terminal value.
//   - Stage 3: validate per-column ascending row indices and finite values.
//
// Errors:
//   - ErrInvalidDimensions, ErrCorruptStructure, ErrOutOfRange, ErrNaNInf.
//
// Complexity:
//   - Time O(c + nnz), Space O(1).
func NewCSC(rows, cols int, colPtr, rowIdx []int, data []float64) (*CSC, error) {
	if rows <= 0 || cols <= 0 {
		return nil, sparseErrorf(ctxNew, ErrInvalidDimensions)
	}
	if len(colPtr) != cols+1 || colPtr[0] != 0 || len(rowIdx) != len(data) || colPtr[cols] != len(data) {
		return nil, sparseErrorf(ctxNew, ErrCorruptStructure)
	}
	var j, p int
	for j = 0; j < cols; j++ {
		if colPtr[j+1] < colPtr[j] {
			return nil, sparseErrorf(ctxNew, ErrCorruptStructure)
		}
		for p = colPtr[j]; p < colPtr[j+1]; p++ {
			if rowIdx[p] < 0 || rowIdx[p] >= rows {
				return nil, sparseErrorf(ctxNew, ErrOutOfRange)
			}
			if p > colPtr[j] && rowIdx[p] <= rowIdx[p-1] {
				return nil, sparseErrorf(ctxNew, ErrCorruptStructure)
			}
		}
	}
	if err := ValidateFinite(data); err != nil {
		return nil, sparseErrorf(ctxNew, err)
	}

	return &CSC{r: rows, c: cols, colPtr: colPtr, rowIdx: rowIdx, data: data}, nil
}

// Identity returns I_n in CSC form.
// Complexity: O(n).
func Identity(n int) (*CSC, error) {
	if n <= 0 {
		return nil, sparseErrorf("Identity", ErrInvalidDimensions)
	}
	colPtr := make([]int, n+1)
	rowIdx := make([]int, n)
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		colPtr[i+1] = i + 1
		rowIdx[i] = i
		data[i] = 1
	}

	return &CSC{r: n, c: n, colPtr: colPtr, rowIdx: rowIdx, data: data}, nil
}

// Zeros returns an rows×cols matrix with no stored entries.
// Complexity: O(cols).
func Zeros(rows, cols int) (*CSC, error) {
	if rows <= 0 || cols <= 0 {
		return nil, sparseErrorf("Zeros", ErrInvalidDimensions)
	}

	return &CSC{r: rows, c: cols, colPtr: make([]int, cols+1)}, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *CSC) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *CSC) Cols() int { return m.c }

// Dims implements mat.Matrix.
func (m *CSC) Dims() (r, c int) { return m.r, m.c }

// NNZ returns the number of stored (non-zero) entries.
func (m *CSC) NNZ() int { return len(m.data) }

// T implements mat.Matrix with a lazy transpose.
func (m *CSC) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// find returns the storage offset of (i,j) and whether it is stored.
func (m *CSC) find(i, j int) (int, bool) {
	lo, hi := m.colPtr[j], m.colPtr[j+1]
	k := lo + sort.SearchInts(m.rowIdx[lo:hi], i)
	if k < hi && m.rowIdx[k] == i {
		return k, true
	}

	return 0, false
}

// At implements mat.Matrix. It panics with mat.ErrIndexOutOfRange on bad
// indices, matching gonum; use Get for an error-returning accessor.
// Complexity: O(log nnz(col j)).
func (m *CSC) At(i, j int) float64 {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		panic(mat.ErrIndexOutOfRange)
	}
	if k, ok := m.find(i, j); ok {
		return m.data[k]
	}

	return 0
}

// Get returns the value at (i,j) or ErrOutOfRange.
func (m *CSC) Get(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("%s(%d,%d): %w", ctxGet, i, j, ErrOutOfRange)
	}

	return m.At(i, j), nil
}

// Column returns read-only views of the row indices and values stored in
// column j. The slices alias the matrix storage and must not be modified.
// Complexity: O(1).
func (m *CSC) Column(j int) (rows []int, vals []float64, err error) {
	if j < 0 || j >= m.c {
		return nil, nil, fmt.Errorf("%s(%d): %w", ctxColumn, j, ErrOutOfRange)
	}
	lo, hi := m.colPtr[j], m.colPtr[j+1]

	return m.rowIdx[lo:hi:hi], m.data[lo:hi:hi], nil
}

// Do visits every stored entry in column-major order (j ascending, then i
// ascending) and stops early when f returns false.
// Complexity: O(nnz).
func (m *CSC) Do(f func(i, j int, v float64) bool) {
	var j, p int
	for j = 0; j < m.c; j++ {
		for p = m.colPtr[j]; p < m.colPtr[j+1]; p++ {
			if !f(m.rowIdx[p], j, m.data[p]) {
				return
			}
		}
	}
}

// ToDense materializes m as a gonum *mat.Dense. Intended for tests and
// small diagnostics only.
// Complexity: Time O(r*c + nnz), Space O(r*c).
func (m *CSC) ToDense() *mat.Dense {
	d := mat.NewDense(m.r, m.c, nil)
	m.Do(func(i, j int, v float64) bool {
		d.Set(i, j, v)
		return true
	})

	return d
}

// MaxAbs returns max |a_ij| over stored entries (0 for an empty matrix).
func (m *CSC) MaxAbs() float64 {
	var best float64
	for _, v := range m.data {
		if a := math.Abs(v); a > best {
			best = a
		}
	}

	return best
}

// String renders an excerpt of the matrix for diagnostics.
func (m *CSC) String() string {
	return fmt.Sprintf("CSC %dx%d nnz=%d\n%v", m.r, m.c, len(m.data), mat.Formatted(m, mat.Excerpt(excerptEdge)))
}
