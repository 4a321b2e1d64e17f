// SPDX-License-Identifier: MIT

// Package operator assembles the heat-equation operators of a build plate
// and collapses one full scan pass into a single affine update.
//
// Elementary operator (one dwell of the laser on one fine cell):
//
//	L1    = tridiag(F, -k·F, F)           k = in-grid neighbours (0, 1 or 2)
//	A     = I⊗L1 + L1⊗I + (1-H)·I          FineCells × FineCells
//	A_ext = [ A   e·0   e·H ]              StateLen × StateLen
//	        [ 0   1     0   ]
//	        [ 0   0     1   ]
//
// The first ambient column is the conductive edge slot (weight zero in
// this scheme); the second feeds convective exchange with the ambient
// temperature. Every row of A_ext sums to one, so a uniform field at the
// ambient temperature is stationary.
//
// Scan pass (Precompute):
//
//	x_{k+1} = A_ext·x_k + G·e_{cell(t,k)},  k = 0 .. TileCount-1
//
// unrolls to x_n = Ab·x_0 + Bb[:, t] with Ab = A_extⁿ and
// Bb[:, t] = Σ_k G·A_ext^{n-1-k}·e_{cell(t,k)}. Precompute accumulates both
// in one sweep, reading columns of the partial power before advancing it,
// so a move costs one sparse matrix-vector product at play time.
package operator
