// SPDX-License-Identifier: MIT

package pseudo

import "github.com/katalvlaran/pseudoprop/matrix"

// Gamma returns the square root Γ of the batch's second moment: SqrtSym(Gram(batch)).
// It is the single source of Γ for both the data-weighted pseudoinverse and
// the mismatch audit.
func (e *Engine) Gamma(batch matrix.Matrix) (*matrix.Dense, error) {
	gram, err := e.Gram(batch)
	if err != nil {
		return nil, pseudoErrorf(opGamma, err)
	}
	gamma, err := e.SqrtSym(gram)
	if err != nil {
		return nil, pseudoErrorf(opGamma, err)
	}

	return gamma, nil
}

// Backward computes the data-weighted pseudoinverse B = Γ·pinv(W·Γ).
// See BackwardWithGamma.
func (e *Engine) Backward(forward, batch matrix.Matrix) (*matrix.Dense, error) {
	b, _, err := e.BackwardWithGamma(forward, batch)
	return b, err
}

// BackwardWithGamma computes B = Γ·pinv(W·Γ) and also returns the Γ it used,
// so callers can audit B without recomputing the decomposition.
//
// Implementation:
//   - Stage 1: validate W (out×in) against the batch (N×in).
//   - Stage 2: Γ ← Gamma(batch).
//   - Stage 3: B ← Γ · Pinv(W·Γ).
//
// Behavior highlights:
//   - out < in, or data confined to a subspace, makes W·Γ rank-deficient; Pinv
//     then returns the minimum-norm solution and no error is raised.
//
// Returns:
//   - b: in×out backward matrix.
//   - gamma: in×in square root of the batch's second moment.
//
// Errors:
//   - ErrShapeMismatch (W.Cols != batch.Cols), ErrInsufficientData,
//     ErrNumericalInstability, matrix.ErrNilMatrix.
//
// Complexity:
//   - Time O(N·in² + in³ + out·in²), Space O(in² + N·in).
func (e *Engine) BackwardWithGamma(forward, batch matrix.Matrix) (b, gamma *matrix.Dense, err error) {
	if err = matrix.ValidateNotNil(forward); err != nil {
		return nil, nil, pseudoErrorf(opBackward, err)
	}
	if err = matrix.ValidateNotNil(batch); err != nil {
		return nil, nil, pseudoErrorf(opBackward, err)
	}
	if forward.Cols() != batch.Cols() {
		return nil, nil, shapeErrorf(opBackward, matrix.ErrDimensionMismatch)
	}

	if gamma, err = e.Gamma(batch); err != nil {
		return nil, nil, pseudoErrorf(opBackward, err)
	}
	wg, err := matrix.Mul(forward, gamma)
	if err != nil {
		return nil, nil, shapeErrorf(opBackward, err)
	}
	p, err := e.Pinv(wg)
	if err != nil {
		return nil, nil, pseudoErrorf(opBackward, err)
	}
	if b, err = matrix.Mul(gamma, p); err != nil {
		return nil, nil, shapeErrorf(opBackward, err)
	}

	return b, gamma, nil
}
