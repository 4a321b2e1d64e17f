// SPDX-License-Identifier: MIT

// Package scanpath describes where the laser sits during one scan pass.
//
// What:
//
//   - A scan pass has TileCount = s² elementary steps.
//   - At step k the laser dwells on one fine cell of every tile; over the
//     whole pass it visits each of the s×s fine cells of a tile exactly once.
//   - Even tiles (0-based) follow a row boustrophedon: left→right on even
//     rows, right→left on odd rows. Odd tiles follow the column
//     boustrophedon: top→bottom on even columns, bottom→top on odd ones.
//
// Why:
//
//   - The operator package only needs "which fine cell is hot at step k for
//     tile t". Keeping that as plain index data makes the geometry testable
//     on its own and keeps operator composition free of index arithmetic.
//
// Complexity:
//
//   - New: O(s² + TileCount); For: O(1).
package scanpath
