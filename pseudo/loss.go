// SPDX-License-Identifier: MIT

package pseudo

import (
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// Loss returns the mean over samples of ‖s − B·W·s‖², one sample per column.
//
// Implementation:
//   - Stage 1: reshape B (row-major) to Wᵀ's shape when the element count matches.
//   - Stage 2: r̂ = B·(W·samples); d = samples − r̂.
//   - Stage 3: per-column sums of d⊙d, averaged with stat.Mean.
//
// Inputs:
//   - backward: any shape holding in·out elements.
//   - forward: out×in.
//   - samples: in×N, one sample per column.
//
// Errors:
//   - ErrShapeMismatch (element count, samples.Rows != in), matrix.ErrNilMatrix,
//     ErrNumericalInstability when the result is not finite.
//
// Complexity:
//   - Time O(out·in·N), Space O(in·N).
func (e *Engine) Loss(backward, forward, samples matrix.Matrix) (float64, error) {
	for _, m := range []matrix.Matrix{backward, forward, samples} {
		if err := matrix.ValidateNotNil(m); err != nil {
			return 0, pseudoErrorf(opLoss, err)
		}
	}
	in, out := forward.Cols(), forward.Rows()
	if samples.Rows() != in {
		return 0, shapeErrorf(opLoss, matrix.ErrDimensionMismatch)
	}

	bd, err := matrix.AsDense(backward)
	if err != nil {
		return 0, pseudoErrorf(opLoss, err)
	}
	b, err := bd.Reshape(in, out)
	if err != nil {
		return 0, shapeErrorf(opLoss, err)
	}

	ws, err := matrix.Mul(forward, samples)
	if err != nil {
		return 0, shapeErrorf(opLoss, err)
	}
	recon, err := matrix.Mul(b, ws)
	if err != nil {
		return 0, shapeErrorf(opLoss, err)
	}
	diff, err := matrix.Sub(samples, recon)
	if err != nil {
		return 0, shapeErrorf(opLoss, err)
	}
	sq, err := matrix.Hadamard(diff, diff)
	if err != nil {
		return 0, pseudoErrorf(opLoss, err)
	}
	perSample, err := matrix.ColSums(sq)
	if err != nil {
		return 0, pseudoErrorf(opLoss, err)
	}

	loss := stat.Mean(perSample, nil)
	if !isFiniteScalar(loss) {
		return 0, pseudoErrorf(opLoss, ErrNumericalInstability)
	}

	return loss, nil
}
