// SPDX-License-Identifier: MIT

package pseudo

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// Pinv returns the Moore–Penrose pseudoinverse A⁺ of an m×n matrix (n×m result).
//
// Implementation:
//   - Stage 1: validate non-nil and finite.
//   - Stage 2: thin SVD A = U·S·Vᵀ via gonum.
//   - Stage 3: A⁺ = V·diag(1/s_i)·Uᵀ, where every s_i <= cutoff counts as zero.
//
// Behavior highlights:
//   - cutoff = rcond·s_max; rcond defaults to max(m, n)·machineEpsilon.
//   - Rank-deficient inputs yield the minimum-norm solution; a zero matrix
//     yields the zero n×m matrix. Neither is an error.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrNumericalInstability (NaN/Inf, SVD failure).
//
// Complexity:
//   - Time O(m·n·min(m,n)), Space O(m·n).
func (e *Engine) Pinv(a matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(a); err != nil {
		return nil, pseudoErrorf(opPinv, err)
	}
	if err := matrix.ValidateFinite(a); err != nil {
		return nil, unstableErrorf(opPinv, err)
	}

	g, err := matrix.ToGonum(a)
	if err != nil {
		return nil, pseudoErrorf(opPinv, err)
	}
	var svd mat.SVD
	if ok := svd.Factorize(g, mat.SVDThin); !ok {
		return nil, pseudoErrorf(opPinv, ErrNumericalInstability)
	}
	s := svd.Values(nil)
	if floats.HasNaN(s) {
		return nil, pseudoErrorf(opPinv, ErrNumericalInstability)
	}

	rows, cols := a.Rows(), a.Cols()
	cutoff := e.cutoff(rows, cols) * floats.Max(s)
	inv := make([]float64, len(s))
	for i, v := range s {
		if v > cutoff {
			inv[i] = 1 / v
		}
	}

	var u, v, vs, p mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	vs.Mul(&v, mat.NewDiagDense(len(inv), inv))
	p.Mul(&vs, u.T())

	out, err := matrix.FromGonum(&p)
	if err != nil {
		return nil, unstableErrorf(opPinv, err)
	}

	return out, nil
}

// cutoff resolves the relative singular-value threshold for an m×n input.
func (e *Engine) cutoff(rows, cols int) float64 {
	if e.opts.rcond > 0 {
		return e.opts.rcond
	}

	return float64(max(rows, cols)) * machineEpsilon
}

// isFiniteScalar reports whether v is neither NaN nor ±Inf.
func isFiniteScalar(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
