// SPDX-License-Identifier: MIT

// Package matrix: the gonum boundary.
// Decompositions (SVD) run on gonum's *mat.Dense; values cross in and out of
// pseudoprop only through ToGonum and FromGonum.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	tagToGonum   = "ToGonum"
	tagFromGonum = "FromGonum"
)

// ToGonum returns a *mat.Dense holding a copy of m.
func ToGonum(m Matrix) (*mat.Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(tagToGonum, err)
	}

	return mat.NewDense(d.r, d.c, append([]float64(nil), d.data...)), nil
}

// FromGonum copies a gonum matrix into a new *Dense.
// Errors: ErrNilMatrix, ErrInvalidDimensions for an empty a, ErrNaNInf.
func FromGonum(a mat.Matrix) (*Dense, error) {
	if a == nil {
		return nil, matrixErrorf(tagFromGonum, ErrNilMatrix)
	}
	r, c := a.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(tagFromGonum, err)
	}
	for k := range out.data {
		v := a.At(k/c, k%c)
		if !isFinite(v) {
			return nil, matrixErrorf(tagFromGonum, fmt.Errorf("(%d,%d): %w", k/c, k%c, ErrNaNInf))
		}
		out.data[k] = v
	}

	return out, nil
}
