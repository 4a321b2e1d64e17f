// SPDX-License-Identifier: MIT

// Package tui is a terminal front-end for one game slot.
//
// The s×s board is drawn as coloured tiles whose background follows a heat
// ramp from the ambient temperature (black) to the melting point (white).
// The fine view draws every mesh cell instead, marking the cursor tile.
//
// Keys:
//
//	←↓↑→ / h j k l   move the cursor
//	space / enter    scan the tile under the cursor
//	f                toggle the fine view
//	r                restart with the same size
//	q / Esc / Ctrl-C quit
package tui
