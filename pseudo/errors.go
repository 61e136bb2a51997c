// SPDX-License-Identifier: MIT

// Package pseudo: sentinel error set.
// Every error returned by this package wraps one of these sentinels with the
// operation tag that detected it; callers match with errors.Is.
package pseudo

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData indicates a batch with fewer than two samples;
	// the unbiased covariance is undefined.
	ErrInsufficientData = errors.New("pseudo: batch needs at least two samples")

	// ErrNumericalInstability indicates a decomposition that did not converge,
	// or NaN/Inf in an input or an intermediate result.
	ErrNumericalInstability = errors.New("pseudo: numerical instability")

	// ErrShapeMismatch indicates non-conformable W, B, Γ or batch dimensions.
	ErrShapeMismatch = errors.New("pseudo: shape mismatch")
)

// Operation tags used in error wrapping.
const (
	opGram          = "Gram"
	opSqrtSym       = "SqrtSym"
	opPinv          = "Pinv"
	opGamma         = "Gamma"
	opBackward      = "Backward"
	opMismatch      = "MismatchEnergy"
	opLoss          = "Loss"
	opValidateBatch = "batch"
)

// pseudoErrorf wraps err with an operation tag, preserving it via %w.
func pseudoErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// shapeErrorf tags err as ErrShapeMismatch while keeping the underlying
// matrix sentinel matchable too.
func shapeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w: %w", tag, ErrShapeMismatch, err)
}

// unstableErrorf tags err as ErrNumericalInstability.
func unstableErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w: %w", tag, ErrNumericalInstability, err)
}
