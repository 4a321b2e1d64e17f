// SPDX-License-Identifier: MIT
package geometry_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/heatscan/geometry"
	"github.com/stretchr/testify/require"
)

// TestNewRejectsInvalidSize verifies size < 1 is an invalid configuration.
func TestNewRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -7} {
		_, err := geometry.New(size, geometry.DefaultMaterial())
		require.ErrorIs(t, err, geometry.ErrInvalidConfiguration, "size %d", size)
	}
}

// TestNewRejectsInvalidMaterial verifies every constant must be positive and finite.
func TestNewRejectsInvalidMaterial(t *testing.T) {
	m := geometry.DefaultMaterial()
	m.ScanSpeed = 0
	_, err := geometry.New(2, m)
	require.ErrorIs(t, err, geometry.ErrInvalidConfiguration)

	m = geometry.DefaultMaterial()
	m.Density = math.NaN()
	_, err = geometry.New(2, m)
	require.ErrorIs(t, err, geometry.ErrInvalidConfiguration)
}

// TestDerivedDimensions checks the size relations for a range of boards.
func TestDerivedDimensions(t *testing.T) {
	cases := []struct {
		size, fineDim, fineCells, tiles int
	}{
		{1, 1, 1, 1},
		{2, 4, 16, 4},
		{3, 9, 81, 9},
		{4, 16, 256, 16},
	}
	for _, tc := range cases {
		g, err := geometry.New(tc.size, geometry.DefaultMaterial())
		require.NoError(t, err)
		require.Equal(t, tc.fineDim, g.FineDim)
		require.Equal(t, tc.fineCells, g.FineCells)
		require.Equal(t, tc.tiles, g.TileCount)
		require.Equal(t, tc.fineCells+2, g.StateLen)
	}
}

// TestCoefficients pins F, G and H for the literal material.
func TestCoefficients(t *testing.T) {
	g, err := geometry.New(2, geometry.DefaultMaterial())
	require.NoError(t, err)

	alpha := 24.0 / (7800.0 * 460.0)
	dx := 200e-6
	dt := dx / 0.6
	require.InDelta(t, alpha*dt/dx/dx, g.F, 1e-15)
	require.InDelta(t, alpha*180*0.37*dt/24/dx/dx/dx, g.G, 1e-9)
	require.InDelta(t, alpha*20*dt/24/dx, g.H, 1e-18)

	// Independent of size: only the mesh grows.
	g3, err := geometry.New(3, geometry.DefaultMaterial())
	require.NoError(t, err)
	require.Equal(t, g.F, g3.F)
	require.Equal(t, g.G, g3.G)
	require.Equal(t, g.H, g3.H)

	// The explicit scheme must stay stable for the shipped material.
	require.Less(t, 4*g.F+g.H, 1.0)
}

// TestIndexing round-trips indices and checks tile origins on a 3×3 board.
func TestIndexing(t *testing.T) {
	g, err := geometry.New(3, geometry.DefaultMaterial())
	require.NoError(t, err)

	for idx := 0; idx < g.FineCells; idx++ {
		r, c := g.Coordinate(idx)
		require.Equal(t, idx, g.Index(r, c))
	}

	require.Equal(t, 0, g.TileOrigin(0))
	require.Equal(t, 3, g.TileOrigin(1))
	require.Equal(t, 27, g.TileOrigin(3))
	require.Equal(t, 3*9+3, g.TileOrigin(4))
	require.Equal(t, 6*9+6, g.TileOrigin(8))

	for tile := 0; tile < g.TileCount; tile++ {
		require.Equal(t, tile, g.TileOf(g.TileOrigin(tile)))
	}
	require.Equal(t, 81, g.AmbientIndex(0))
	require.Equal(t, 82, g.AmbientIndex(1))
}
