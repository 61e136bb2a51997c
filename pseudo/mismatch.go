// SPDX-License-Identifier: MIT

package pseudo

import "github.com/katalvlaran/pseudoprop/matrix"

// MismatchEnergy returns ½·‖Γ − B·W·Γ‖_F.
//
// The value is zero iff B·W acts as the identity on the column space of Γ, and
// grows as a candidate B departs from the data-weighted pseudoinverse of W.
// It is a diagnostic only.
//
// Inputs:
//   - gamma: in×in, backward: in×out, forward: out×in.
//
// Errors:
//   - ErrShapeMismatch for non-conformable shapes, matrix.ErrNilMatrix,
//     ErrNumericalInstability when the result is not finite.
//
// Complexity:
//   - Time O(in²·out + in³), Space O(in²).
func (e *Engine) MismatchEnergy(gamma, backward, forward matrix.Matrix) (float64, error) {
	for _, m := range []matrix.Matrix{gamma, backward, forward} {
		if err := matrix.ValidateNotNil(m); err != nil {
			return 0, pseudoErrorf(opMismatch, err)
		}
	}
	in, out := forward.Cols(), forward.Rows()
	if gamma.Rows() != in || gamma.Cols() != in || backward.Rows() != in || backward.Cols() != out {
		return 0, shapeErrorf(opMismatch, matrix.ErrDimensionMismatch)
	}

	bw, err := matrix.Mul(backward, forward)
	if err != nil {
		return 0, shapeErrorf(opMismatch, err)
	}
	bwg, err := matrix.Mul(bw, gamma)
	if err != nil {
		return 0, shapeErrorf(opMismatch, err)
	}
	residual, err := matrix.Sub(gamma, bwg)
	if err != nil {
		return 0, shapeErrorf(opMismatch, err)
	}
	norm, err := matrix.FrobeniusNorm(residual)
	if err != nil {
		return 0, pseudoErrorf(opMismatch, err)
	}
	if !isFiniteScalar(norm) {
		return 0, pseudoErrorf(opMismatch, ErrNumericalInstability)
	}

	return 0.5 * norm, nil
}
