// SPDX-License-Identifier: MIT

// Package sparse provides compressed sparse column (CSC) matrices and the
// handful of kernels the thermal operators need: identity, Kronecker
// product, sum, scaling, product and matrix-vector product.
//
// What & Why:
//
//	The heat operators of a build plate are 5-point stencils over
//	FineDim² cells. Dense storage would cost O(FineCells²) memory before a
//	single timestep is composed. CSC keeps every column contiguous, which is
//	what the scan-pass precomputation reads (Ab[:, k]) and what the
//	column-oriented product Ab·A_ext writes.
//
// Layout:
//
//	col j owns entries colPtr[j] .. colPtr[j+1]-1 of rowIdx/data, row
//	indices strictly ascending inside a column, no explicit zeros.
//
// Determinism:
//
//	All kernels use fixed j→k→i loop orders and emit rows in ascending
//	order, so identical inputs always produce bit-identical outputs.
//
// Interop:
//
//	*CSC implements gonum's mat.Matrix, so mat.Formatted, mat.EqualApprox
//	and dense reference products work on it directly.
//
// Complexity quicksheet:
//   - Identity: O(n); Kron: O(nnz(a)·nnz(b)); Add: O(nnz(a)+nnz(b));
//   - Mul: O(Σ_j Σ_{k∈b[:,j]} nnz(a[:,k])) plus a per-column sort;
//   - MulVec: O(nnz); Column: O(1) (shared slices).
package sparse
