// SPDX-License-Identifier: MIT
package sparse_test

import (
	"fmt"

	"github.com/katalvlaran/heatscan/sparse"
)

// ExampleKron assembles a 2D Laplacian-like operator from a 1D stencil
// and applies it to a vector, the same way the heat operator is built.
func ExampleKron() {
	b, _ := sparse.NewBuilder(2, 2, 4)
	_ = b.Add(0, 0, -1)
	_ = b.Add(0, 1, 1)
	_ = b.Add(1, 0, 1)
	_ = b.Add(1, 1, -1)
	l1, _ := b.Build()

	id, _ := sparse.Identity(2)
	ax, _ := sparse.Kron(id, l1)
	ay, _ := sparse.Kron(l1, id)
	lap, _ := sparse.Add(ax, ay)

	y, _ := sparse.MulVec(lap, []float64{1, 1, 1, 1})
	fmt.Println("nnz:", lap.NNZ())
	fmt.Println("constant field is stationary:", y)

	// Output:
	// nnz: 12
	// constant field is stationary: [0 0 0 0]
}
