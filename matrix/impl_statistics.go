// SPDX-License-Identifier: MIT

// Package matrix: column statistics of a sample batch.
// Rows are samples and columns are features; these are the pieces the
// moment estimator composes into Γ².

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const (
	tagColumnMeans   = "ColumnMeans"
	tagCenterColumns = "CenterColumns"
	tagCovariance    = "Covariance"
)

// columnMeans returns the mean of every column.
func columnMeans(X Matrix) ([]float64, error) {
	sums, err := ColSums(X)
	if err != nil {
		return nil, matrixErrorf(tagColumnMeans, err)
	}
	floats.Scale(1/float64(X.Rows()), sums)

	return sums, nil
}

// centerColumns returns X − 1·meansᵀ and the means it removed.
func centerColumns(X Matrix) (*Dense, []float64, error) {
	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(tagCenterColumns, err)
	}
	d, err := AsDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(tagCenterColumns, err)
	}
	out := &Dense{r: d.r, c: d.c, data: append([]float64(nil), d.data...), finite: d.finite}
	for i := 0; i < d.r; i++ {
		floats.Sub(out.data[i*d.c:(i+1)*d.c], means)
	}

	return out, means, nil
}

// covariance returns (Xcᵀ·Xc)/(N−1) for the centered Xc, and the column means.
//
// Errors:
//   - ErrNilMatrix; ErrDimensionMismatch when X has fewer than two rows, since
//     the N−1 normalization is undefined there.
//
// Complexity:
//   - Time O(N·D²), Space O(N·D + D²).
func covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(tagCovariance, err)
	}
	if X.Rows() < 2 {
		return nil, nil, matrixErrorf(tagCovariance, fmt.Errorf("%d rows: %w", X.Rows(), ErrDimensionMismatch))
	}
	xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(tagCovariance, err)
	}
	xct, err := Transpose(xc)
	if err != nil {
		return nil, nil, matrixErrorf(tagCovariance, err)
	}
	scatter, err := Mul(xct, xc)
	if err != nil {
		return nil, nil, matrixErrorf(tagCovariance, err)
	}
	cov, err := Scale(scatter, 1/float64(X.Rows()-1))
	if err != nil {
		return nil, nil, matrixErrorf(tagCovariance, err)
	}

	return cov, means, nil
}
