// SPDX-License-Identifier: MIT

package pseudo

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// SqrtSym returns Γ = U·diag(√max(s,0))·Vᵀ for a symmetric PSD input Γ² = U·S·Vᵀ.
//
// Implementation:
//   - Stage 1: validate square, finite and symmetric within
//     SymmetryTolerance·max(1, max|entry|).
//   - Stage 2: thin SVD via gonum; a non-converging factorization is an error.
//   - Stage 3: clamp singular values at zero, take square roots, recompose.
//
// Behavior highlights:
//   - Γ·Γᵀ reproduces the input up to rounding; the sign ambiguity of singular
//     vectors cancels in the product.
//
// Errors:
//   - ErrShapeMismatch (non-square), matrix.ErrAsymmetry (asymmetric input),
//     ErrNumericalInstability (NaN/Inf, SVD failure, non-finite singular values).
//
// Complexity:
//   - Time O(D³), Space O(D²).
func (e *Engine) SqrtSym(gram matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(gram); err != nil {
		if errors.Is(err, matrix.ErrDimensionMismatch) {
			return nil, shapeErrorf(opSqrtSym, err)
		}
		return nil, pseudoErrorf(opSqrtSym, err)
	}
	if err := matrix.ValidateFinite(gram); err != nil {
		return nil, unstableErrorf(opSqrtSym, err)
	}
	if err := matrix.ValidateSymmetric(gram, e.opts.symTol*math.Max(1, maxAbs(gram))); err != nil {
		return nil, pseudoErrorf(opSqrtSym, err)
	}

	g, err := matrix.ToGonum(gram)
	if err != nil {
		return nil, pseudoErrorf(opSqrtSym, err)
	}
	var svd mat.SVD
	if ok := svd.Factorize(g, mat.SVDThin); !ok {
		return nil, pseudoErrorf(opSqrtSym, ErrNumericalInstability)
	}
	s := svd.Values(nil)
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, pseudoErrorf(opSqrtSym, ErrNumericalInstability)
		}
		s[i] = math.Sqrt(math.Max(v, 0)) // noise may drive tiny values negative
	}

	var u, v, us, gamma mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	us.Mul(&u, mat.NewDiagDense(len(s), s))
	gamma.Mul(&us, v.T())

	out, err := matrix.FromGonum(&gamma)
	if err != nil {
		return nil, unstableErrorf(opSqrtSym, err)
	}

	return out, nil
}

// maxAbs returns max|m[i,j]|; m is assumed validated.
func maxAbs(m matrix.Matrix) float64 {
	var best, v float64
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			if a := math.Abs(v); a > best {
				best = a
			}
		}
	}

	return best
}
