// SPDX-License-Identifier: MIT

package pseudo

import "github.com/katalvlaran/pseudoprop/matrix"

// Gram estimates the raw second moment Γ² = Cov(batch) + mean·meanᵀ.
//
// Implementation:
//   - Stage 1: validate the batch (rows = samples, N >= 2, finite).
//   - Stage 2: unbiased (N−1) column covariance and column means via matrix.Covariance.
//   - Stage 3: add the mean outer product and symmetrize.
//
// Behavior highlights:
//   - The result is exactly symmetric; round-off asymmetry from the covariance
//     product never reaches the decomposition.
//   - Pure and deterministic: identical input bits give identical output bits.
//
// Inputs:
//   - batch: N×D matrix, one sample per row.
//
// Returns:
//   - *matrix.Dense: D×D symmetric PSD matrix.
//
// Errors:
//   - ErrInsufficientData (N < 2), ErrNumericalInstability (NaN/Inf), matrix.ErrNilMatrix.
//
// Complexity:
//   - Time O(N·D²), Space O(N·D + D²).
func (e *Engine) Gram(batch matrix.Matrix) (*matrix.Dense, error) {
	if err := validateBatch(batch); err != nil {
		return nil, pseudoErrorf(opGram, err)
	}

	cov, means, err := matrix.Covariance(batch)
	if err != nil {
		return nil, pseudoErrorf(opGram, err)
	}
	outer, err := matrix.Outer(means, means)
	if err != nil {
		return nil, pseudoErrorf(opGram, err)
	}
	sum, err := matrix.Add(cov, outer)
	if err != nil {
		return nil, pseudoErrorf(opGram, err)
	}
	gram, err := matrix.Symmetrize(sum)
	if err != nil {
		return nil, pseudoErrorf(opGram, err)
	}
	if !gram.IsFinite() {
		return nil, pseudoErrorf(opGram, ErrNumericalInstability)
	}

	return gram, nil
}
