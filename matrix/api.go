// SPDX-License-Identifier: MIT

// Package matrix: convenience constructors and small compositions.
// Each function here forwards to a kernel in impl_*.go or composes a few of
// them; none adds its own validation beyond what the kernels perform.

package matrix

import "fmt"

const (
	tagSymmetrize = "Symmetrize"
	tagColSums    = "ColSums"
	tagIdentity   = "NewIdentity"
	tagAsDense    = "AsDense"
)

// NewZeros is NewDense under the name used at call sites that want zeros.
func NewZeros(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }

// NewIdentity returns the n×n identity.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(tagIdentity, err)
	}
	for i := 0; i < n; i++ {
		id.data[i*(n+1)] = 1
	}

	return id, nil
}

// ZerosLike returns zeros in the shape of m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}

// Symmetrize returns (m + mᵀ)/2 for a square m.
// Entry (i,j) and (j,i) come from the same sum, so the result is symmetric
// bit for bit; Γ² goes through here before any decomposition.
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(tagSymmetrize, err)
	}
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(tagSymmetrize, err)
	}
	n := d.r
	out, _ := NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 0.5 * (d.data[i*n+j] + d.data[j*n+i])
			out.data[i*n+j], out.data[j*n+i] = v, v
		}
	}

	return out, nil
}

// ColSums returns s with s[j] = Σ_i m[i,j].
func ColSums(m Matrix) ([]float64, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(tagColSums, err)
	}
	sums := make([]float64, d.c)
	for k, v := range d.data {
		sums[k%d.c] += v
	}

	return sums, nil
}

// AllClose reports whether |a−b| ≤ atol + rtol·|b| holds for every element.
// Shapes must match.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// ColumnMeans returns the mean of every column of X.
func ColumnMeans(X Matrix) ([]float64, error) { return columnMeans(X) }

// CenterColumns returns X with every column mean removed, and those means.
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// Covariance returns the unbiased (N−1) column covariance of X and its
// column means. X needs at least two rows.
func Covariance(X Matrix) (*Dense, []float64, error) { return covariance(X) }

// AsDense returns m unchanged when it already is a *Dense and a copy otherwise.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(tagAsDense, err)
	}
	for k := range out.data {
		v, err := m.At(k/out.c, k%out.c)
		if err != nil {
			return nil, matrixErrorf(tagAsDense, err)
		}
		if !isFinite(v) {
			return nil, matrixErrorf(tagAsDense, fmt.Errorf("(%d,%d): %w", k/out.c, k%out.c, ErrNaNInf))
		}
		out.data[k] = v
	}

	return out, nil
}
