// SPDX-License-Identifier: MIT

// Package geometry derives the discretization of a build plate from a single
// size parameter s.
//
// What:
//
//   - The player sees an s×s board of macro tiles (TileCount = s²).
//   - Each macro tile is an s×s block of fine cells, so the computational
//     mesh is FineDim×FineDim with FineDim = s² and FineCells = FineDim².
//   - The state vector carries FineCells temperatures plus two ambient
//     slots (StateLen = FineCells + 2).
//   - Material constants fix the explicit-scheme numbers:
//     F (diffusion), G (laser source) and H (convective loss).
//
// Indexing:
//
//   - Fine cell (row, col) lives at row*FineDim + col (row-major).
//   - Tile t (0-based) sits at tile row t/s, tile column t%s and its
//     top-left fine cell is (t/s·s, t%s·s).
//
// Errors:
//
//   - ErrInvalidConfiguration: size < 1 or a non-positive / non-finite
//     material constant.
package geometry
