// SPDX-License-Identifier: MIT
// Package sparse_test contains shared fixtures for kernel tests.

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/heatscan/sparse"
	"github.com/stretchr/testify/require"
)

// tol is the absolute tolerance used when comparing against dense oracles.
const tol = 1e-12

// randomCSC builds an r×c matrix with roughly density·r·c entries drawn
// from a seeded source, so every run sees the same operands.
func randomCSC(t testing.TB, rng *rand.Rand, r, c int, density float64) *sparse.CSC {
	t.Helper()
	b, err := sparse.NewBuilder(r, c, int(density*float64(r*c))+1)
	require.NoError(t, err)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if rng.Float64() < density {
				require.NoError(t, b.Add(i, j, rng.Float64()*2-1))
			}
		}
	}
	m, err := b.Build()
	require.NoError(t, err)

	return m
}

// fromRows builds a CSC from a dense row-major literal.
func fromRows(t testing.TB, rows [][]float64) *sparse.CSC {
	t.Helper()
	b, err := sparse.NewBuilder(len(rows), len(rows[0]), 0)
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, b.Add(i, j, v))
		}
	}
	m, err := b.Build()
	require.NoError(t, err)

	return m
}
