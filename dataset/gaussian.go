// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"

	"github.com/katalvlaran/pseudoprop/rng"
)

// Gaussian mixture defaults.
const (
	DefaultGaussianDim     = 8
	DefaultGaussianClasses = 2
	GaussianSeparation     = 2.0
)

// Gaussian is a class-balanced isotropic Gaussian mixture. Class k is centred
// at GaussianSeparation on every coordinate j with j mod classes == k and 0
// elsewhere; every coordinate has unit variance.
type Gaussian struct{ table }

// NewGaussian draws size samples of dimension dim over classes classes.
func NewGaussian(size, dim, classes int, seed int64) (*Gaussian, error) {
	if size <= 0 || dim <= 0 || classes < 2 || classes > dim {
		return nil, fmt.Errorf("gaussian size=%d dim=%d classes=%d: %w", size, dim, classes, ErrInvalidSize)
	}
	names := make([]string, classes)
	for k := range names {
		names[k] = fmt.Sprintf("class_%d", k)
	}
	r := rng.FromSeed(seed)
	g := &Gaussian{table{
		inputs:  make([][]float64, size),
		labels:  make([]int, size),
		dim:     dim,
		classes: names,
	}}
	for i := 0; i < size; i++ {
		k := i % classes
		x := make([]float64, dim)
		for j := range x {
			x[j] = r.NormFloat64()
			if j%classes == k {
				x[j] += GaussianSeparation
			}
		}
		g.inputs[i] = x
		g.labels[i] = k
	}

	return g, nil
}

// splitSeed decorrelates the train and test draws of one configured seed.
func splitSeed(seed int64, split Split) int64 {
	if split == Test {
		return rng.DeriveSeed(seed, rng.StreamTestData)
	}

	return rng.DeriveSeed(seed, rng.StreamTrainData)
}
