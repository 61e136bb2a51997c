// SPDX-License-Identifier: MIT

// Package matrix: shared argument checks.
//
// Kernels here and in dependent packages call these before touching data, so
// a given misuse always produces the same sentinel. Every check is O(1)
// except ValidateSymmetric and ValidateFinite, which scan the elements.

package matrix

import (
	"fmt"
	"math"
)

// checkErrorf tags err with the name of the failing check.
func checkErrorf(check string, err error) error {
	return fmt.Errorf("%s: %w", check, err)
}

// ValidateNotNil rejects a nil Matrix and a typed-nil *Dense.
func ValidateNotNil(m Matrix) error {
	if d, ok := m.(*Dense); m == nil || (ok && d == nil) {
		return checkErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape requires equal rows and columns; a and b must be non-nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return checkErrorf("ValidateSameShape", fmt.Errorf("%dx%d vs %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateBinarySameShape runs ValidateNotNil on both operands, then ValidateSameShape.
func ValidateBinarySameShape(a, b Matrix) error {
	for _, m := range [...]Matrix{a, b} {
		if err := ValidateNotNil(m); err != nil {
			return checkErrorf("ValidateBinarySameShape", err)
		}
	}
	if err := ValidateSameShape(a, b); err != nil {
		return checkErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateSquare requires a non-nil m with Rows() == Cols().
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return checkErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return checkErrorf("ValidateSquare", fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateVecLen requires a non-nil x of length n.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return checkErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return checkErrorf("ValidateVecLen", fmt.Errorf("len %d, want %d: %w", len(x), n, ErrDimensionMismatch))
	}

	return nil
}

// ValidateMulCompatible requires non-nil operands with a.Cols() == b.Rows().
func ValidateMulCompatible(a, b Matrix) error {
	for _, m := range [...]Matrix{a, b} {
		if err := ValidateNotNil(m); err != nil {
			return checkErrorf("ValidateMulCompatible", err)
		}
	}
	if a.Cols() != b.Rows() {
		return checkErrorf("ValidateMulCompatible", fmt.Errorf("%dx%d · %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch))
	}

	return nil
}

// ValidateSymmetric requires a square m with |m[i,j] − m[j,i]| ≤ |tol| for all i < j.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (tol not finite), ErrAsymmetry.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return checkErrorf("ValidateSymmetric", err)
	}
	if !isFinite(tol) {
		return checkErrorf("ValidateSymmetric", ErrNaNInf)
	}
	d, err := AsDense(m)
	if err != nil {
		return checkErrorf("ValidateSymmetric", err)
	}
	tol = math.Abs(tol)
	n := d.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(d.data[i*n+j]-d.data[j*n+i]) > tol {
				return checkErrorf("ValidateSymmetric", fmt.Errorf("(%d,%d): %w", i, j, ErrAsymmetry))
			}
		}
	}

	return nil
}

// ValidateFinite rejects any NaN or ±Inf element.
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return checkErrorf("ValidateFinite", err)
	}
	if d, ok := m.(*Dense); ok {
		if !d.IsFinite() {
			return checkErrorf("ValidateFinite", ErrNaNInf)
		}
		return nil
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return checkErrorf("ValidateFinite", err)
			}
			if !isFinite(v) {
				return checkErrorf("ValidateFinite", ErrNaNInf)
			}
		}
	}

	return nil
}
