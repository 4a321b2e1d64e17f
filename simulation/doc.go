// SPDX-License-Identifier: MIT

// Package simulation runs one play-through of the build plate: a state
// vector advanced by one precomputed scan pass per selected tile.
//
// What:
//
//   - Session owns the state vector and the set of selected tiles. It
//     shares an immutable operator.Pass with other sessions of the same
//     grid.
//   - Move validates a 1-based tile index, then applies
//     state := Ab·state + Bb[:, tile-1]. Rejections never mutate.
//   - Map, Accuracy and Complete are pure reads of derived quantities.
//
// Accuracy:
//
//	accuracy = ‖Cb·state‖₂ / Tm / s²
//
// where Cb subtracts the fine-field mean and zeroes the ambient slots.
// Projection applies Cb structurally without materializing it.
//
// Concurrency:
//
//   - A Session is not safe for concurrent use; hosts serialize access
//     (see package game).
package simulation
