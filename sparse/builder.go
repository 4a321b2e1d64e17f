// SPDX-License-Identifier: MIT

// Package sparse - triplet builder.
//
// Builder collects (i, j, v) triplets in any order and compresses them into
// a CSC. Duplicate coordinates are summed; entries that end up exactly zero
// are dropped. Build is deterministic: output order depends only on the
// coordinates, never on insertion order.

package sparse

import (
	"fmt"
	"math"
	"sort"
)

const ctxBuild = "Builder.Build"

// triplet is a single coordinate entry awaiting compression.
type triplet struct {
	i, j int
	v    float64
}

// Builder accumulates entries for a rows×cols CSC.
type Builder struct {
	r, c  int
	items []triplet
}

// NewBuilder returns a builder for a rows×cols matrix with room for
// capacity entries.
func NewBuilder(rows, cols, capacity int) (*Builder, error) {
	if rows <= 0 || cols <= 0 {
		return nil, sparseErrorf("NewBuilder", ErrInvalidDimensions)
	}
	if capacity < 0 {
		capacity = 0
	}

	return &Builder{r: rows, c: cols, items: make([]triplet, 0, capacity)}, nil
}

// Add queues v at (i,j). Zero values are accepted and simply vanish in Build.
//
// Errors:
//   - ErrOutOfRange for bad coordinates, ErrNaNInf for non-finite v.
func (b *Builder) Add(i, j int, v float64) error {
	if i < 0 || i >= b.r || j < 0 || j >= b.c {
		return fmt.Errorf("Builder.Add(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("Builder.Add(%d,%d): %w", i, j, ErrNaNInf)
	}
	b.items = append(b.items, triplet{i: i, j: j, v: v})

	return nil
}

// AddMatrix queues every stored entry of m shifted by (rowOff, colOff).
// Used to embed one operator as a block of a larger one.
func (b *Builder) AddMatrix(m *CSC, rowOff, colOff int) error {
	if err := ValidateNotNil(m); err != nil {
		return sparseErrorf("Builder.AddMatrix", err)
	}
	if rowOff < 0 || colOff < 0 || rowOff+m.r > b.r || colOff+m.c > b.c {
		return sparseErrorf("Builder.AddMatrix", ErrDimensionMismatch)
	}
	m.Do(func(i, j int, v float64) bool {
		b.items = append(b.items, triplet{i: i + rowOff, j: j + colOff, v: v})
		return true
	})

	return nil
}

// Len reports the number of queued triplets (duplicates included).
func (b *Builder) Len() int { return len(b.items) }

// Build compresses the queued triplets into a CSC.
//
// Implementation:
//   - Stage 1: stable sort by (j, i).
//   - Stage 2: single pass summing runs of equal coordinates, dropping zeros.
//   - Stage 3: prefix-sum column counts into colPtr.
//
// Complexity:
//   - Time O(t log t) for t triplets, Space O(t).
func (b *Builder) Build() (*CSC, error) {
	items := make([]triplet, len(b.items))
	copy(items, b.items)
	sort.SliceStable(items, func(x, y int) bool {
		if items[x].j != items[y].j {
			return items[x].j < items[y].j
		}
		return items[x].i < items[y].i
	})

	colPtr := make([]int, b.c+1)
	rowIdx := make([]int, 0, len(items))
	data := make([]float64, 0, len(items))
	var p, q int
	var sum float64
	for p = 0; p < len(items); p = q {
		sum = 0
		for q = p; q < len(items) && items[q].i == items[p].i && items[q].j == items[p].j; q++ {
			sum += items[q].v
		}
		if sum == 0 {
			continue
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, sparseErrorf(ctxBuild, ErrNaNInf)
		}
		rowIdx = append(rowIdx, items[p].i)
		data = append(data, sum)
		colPtr[items[p].j+1]++
	}
	for j := 0; j < b.c; j++ {
		colPtr[j+1] += colPtr[j]
	}

	return &CSC{r: b.r, c: b.c, colPtr: colPtr, rowIdx: rowIdx, data: data}, nil
}

// FromDenseColumns compresses dense columns (each of length rows) into a
// CSC, dropping exact zeros. cols[j] becomes column j.
// Complexity: O(rows*len(cols)).
func FromDenseColumns(rows int, cols [][]float64) (*CSC, error) {
	if rows <= 0 || len(cols) == 0 {
		return nil, sparseErrorf("FromDenseColumns", ErrInvalidDimensions)
	}
	colPtr := make([]int, len(cols)+1)
	var rowIdx []int
	var data []float64
	for j, col := range cols {
		if len(col) != rows {
			return nil, fmt.Errorf("FromDenseColumns: column %d: %w", j, ErrDimensionMismatch)
		}
		if err := ValidateFinite(col); err != nil {
			return nil, fmt.Errorf("FromDenseColumns: column %d: %w", j, err)
		}
		for i, v := range col {
			if v != 0 {
				rowIdx = append(rowIdx, i)
				data = append(data, v)
			}
		}
		colPtr[j+1] = len(data)
	}

	return &CSC{r: rows, c: len(cols), colPtr: colPtr, rowIdx: rowIdx, data: data}, nil
}
