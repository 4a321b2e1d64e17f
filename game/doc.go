// SPDX-License-Identifier: MIT

// Package game hosts simulation sessions for front-ends.
//
// A Game is one player slot with the three host operations:
//
//	Initialize(ctx, size) -> s×s map      (replaces any previous session)
//	ApplyMove(tile)       -> MoveResult   (NotInitialized without a session)
//	QueryStatus()         -> Status, ok   (ok == false before Initialize)
//
// Mutations are serialized under a write lock; QueryStatus only takes the
// read lock, so concurrent readers never observe a half-applied move.
// Initialize calls are admitted one at a time and build outside the lock.
//
// Operator builds are shared through an OperatorCache: every session of
// the same size and material reuses one immutable operator.Pass. A build
// outlives the caller that started it as long as anyone still waits.
// A Registry keys a bounded number of independent games by uuid for
// multi-player hosts.
//
// Errors (sentinel):
//
//	– simulation.ErrInvalidConfiguration  size < 1, size above the cap, bad material.
//	– ErrUnknownSession                   Registry lookup of a missing or malformed id.
//	– ErrRegistryFull                     Registry.Create at the session limit.
package game
