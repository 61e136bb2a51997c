// SPDX-License-Identifier: MIT

// Package matrix: approximate equality.

package matrix

import "math"

const tagAllClose = "AllClose"

// ewAllClose walks a and b together and stops at the first pair that is not
// close. NaN is never close to anything.
// Errors: ErrNaNInf for a non-finite tolerance; ErrNilMatrix, ErrDimensionMismatch.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if !isFinite(rtol) || !isFinite(atol) {
		return false, matrixErrorf(tagAllClose, ErrNaNInf)
	}
	da, db, err := densePair(tagAllClose, a, b)
	if err != nil {
		return false, err
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for k, av := range da.data {
		if !closeEnough(av, db.data[k], rtol, atol) {
			return false, nil
		}
	}

	return true, nil
}

// closeEnough reports |a−b| ≤ atol + rtol·|b|.
func closeEnough(a, b, rtol, atol float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
