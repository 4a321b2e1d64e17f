// SPDX-License-Identifier: MIT
package sparse_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/heatscan/sparse"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }

// TestBuilderSumsDuplicatesAndDropsZeros covers the compression policy.
func TestBuilderSumsDuplicatesAndDropsZeros(t *testing.T) {
	b, err := sparse.NewBuilder(2, 2, 4)
	require.NoError(t, err)
	require.NoError(t, b.Add(1, 1, 2))
	require.NoError(t, b.Add(0, 0, 1))
	require.NoError(t, b.Add(1, 1, 3))
	require.NoError(t, b.Add(0, 1, 5))
	require.NoError(t, b.Add(0, 1, -5))
	require.Equal(t, 5, b.Len())

	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 2, m.NNZ())
	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 5.0, m.At(1, 1))
	require.Equal(t, 0.0, m.At(0, 1))
}

// TestBuilderRejectsBadInput verifies coordinate and numeric guards.
func TestBuilderRejectsBadInput(t *testing.T) {
	_, err := sparse.NewBuilder(0, 3, 0)
	require.ErrorIs(t, err, sparse.ErrInvalidDimensions)

	b, err := sparse.NewBuilder(2, 2, 0)
	require.NoError(t, err)
	require.ErrorIs(t, b.Add(2, 0, 1), sparse.ErrOutOfRange)
	require.ErrorIs(t, b.Add(0, -1, 1), sparse.ErrOutOfRange)
	require.ErrorIs(t, b.Add(0, 0, math.Inf(1)), sparse.ErrNaNInf)
}

// TestBuilderAddMatrixEmbeds checks block embedding with offsets.
func TestBuilderAddMatrixEmbeds(t *testing.T) {
	inner := fromRows(t, [][]float64{
		{1, 2},
		{3, 4},
	})
	b, err := sparse.NewBuilder(3, 3, 0)
	require.NoError(t, err)
	require.NoError(t, b.AddMatrix(inner, 1, 1))
	require.ErrorIs(t, b.AddMatrix(inner, 2, 0), sparse.ErrDimensionMismatch)

	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1.0, m.At(1, 1))
	require.Equal(t, 4.0, m.At(2, 2))
	require.Equal(t, 0.0, m.At(0, 0))
}

// TestFromDenseColumns compresses dense columns and validates lengths.
func TestFromDenseColumns(t *testing.T) {
	m, err := sparse.FromDenseColumns(3, [][]float64{{0, 1, 0}, {2, 0, 3}})
	require.NoError(t, err)
	require.Equal(t, 3, m.NNZ())
	require.Equal(t, 1.0, m.At(1, 0))
	require.Equal(t, 3.0, m.At(2, 1))

	_, err = sparse.FromDenseColumns(3, [][]float64{{1, 2}})
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	_, err = sparse.FromDenseColumns(2, [][]float64{{nan(), 0}})
	require.ErrorIs(t, err, sparse.ErrNaNInf)
}
