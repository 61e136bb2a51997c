package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// ExampleCovariance shows the unbiased column covariance of a small batch.
func ExampleCovariance() {
	x, _ := matrix.FromRows([][]float64{{1, 0}, {0, 1}, {1, 1}})
	cov, means, _ := matrix.Covariance(x)
	fmt.Printf("means=%.3f\n", means)
	for _, row := range cov.ToRows() {
		fmt.Printf("%.4f\n", row)
	}
	// Output:
	// means=[0.667 0.667]
	// [0.3333 -0.1667]
	// [-0.1667 0.3333]
}
