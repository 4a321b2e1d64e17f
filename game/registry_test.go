// SPDX-License-Identifier: MIT
package game_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/heatscan/game"
	"github.com/katalvlaran/heatscan/logging"
)

func newRegistry(limit int) *game.Registry {
	cache := game.NewOperatorCache(logging.Discard())
	return game.NewRegistry(func() *game.Game {
		return game.New(game.WithCache(cache), game.WithLogger(logging.Discard()))
	}, limit)
}

func TestRegistryLookup(t *testing.T) {
	r := newRegistry(0)

	def, err := r.Lookup("")
	require.NoError(t, err)
	require.Same(t, r.Default(), def)

	id, g, err := r.Create()
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
	got, err := r.Lookup(id.String())
	require.NoError(t, err)
	require.Same(t, g, got)

	_, err = r.Lookup("not-a-uuid")
	require.ErrorIs(t, err, game.ErrUnknownSession)
	_, err = r.Lookup(uuid.NewString())
	require.ErrorIs(t, err, game.ErrUnknownSession)

	require.True(t, r.Delete(id))
	require.False(t, r.Delete(id))
	_, ok := r.Get(id)
	require.False(t, ok)
}

// TestRegistryGamesAreIndependent verifies sessions do not leak between
// registered games.
func TestRegistryGamesAreIndependent(t *testing.T) {
	r := newRegistry(0)
	_, a, err := r.Create()
	require.NoError(t, err)
	_, b, err := r.Create()
	require.NoError(t, err)

	_, err = a.Initialize(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, a.ApplyMove(1).Accepted)

	_, ok := b.QueryStatus()
	require.False(t, ok)
	_, ok = r.Default().QueryStatus()
	require.False(t, ok)
}

// TestRegistryLimit verifies Create stops at the limit and deleting a game
// frees its slot.
func TestRegistryLimit(t *testing.T) {
	r := newRegistry(2)
	first, _, err := r.Create()
	require.NoError(t, err)
	_, _, err = r.Create()
	require.NoError(t, err)

	_, g, err := r.Create()
	require.ErrorIs(t, err, game.ErrRegistryFull)
	require.Nil(t, g)
	require.Equal(t, 2, r.Len())

	require.True(t, r.Delete(first))
	_, _, err = r.Create()
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	require.Panics(t, func() { newRegistry(-1) })
}
