// SPDX-License-Identifier: MIT

// Package matrix: sentinel errors.
//
// Kernels return these sentinels wrapped with the operation that failed
// ("Mul: matrix: dimension mismatch"); callers match them with errors.Is.
// Nothing in the package panics on bad input except option constructors.

package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates a requested shape with a non-positive side.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates a row or column index outside the shape.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates operands whose shapes do not fit the
	// operation, or a statistic that needs more rows than it was given.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry indicates a square matrix that is not symmetric within tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrNaNInf indicates a NaN or ±Inf where only finite values are allowed.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates a nil Matrix argument, including a typed-nil *Dense.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
