// SPDX-License-Identifier: MIT

// Package matrix: linear-algebra kernels.
//
// Every kernel validates its operands first, allocates a fresh *Dense for
// the result and never mutates an operand. Operands that are not *Dense are
// copied once through AsDense, so the loops below only see flat row-major
// slices. Row-level arithmetic is delegated to gonum's floats package.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const (
	tagAdd       = "Add"
	tagSub       = "Sub"
	tagMul       = "Mul"
	tagTranspose = "Transpose"
	tagScale     = "Scale"
	tagHadamard  = "Hadamard"
	tagMatVec    = "MatVec"
	tagOuter     = "Outer"
	tagFrobenius = "FrobeniusNorm"
)

// matrixErrorf prefixes err with the failing operation; errors.Is still
// reaches the sentinel through %w.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// densePair checks a and b for the same shape and returns them as *Dense.
func densePair(tag string, a, b Matrix) (*Dense, *Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, nil, matrixErrorf(tag, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, nil, matrixErrorf(tag, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, nil, matrixErrorf(tag, err)
	}

	return da, db, nil
}

// Add returns a + b. Shapes must match.
func Add(a, b Matrix) (*Dense, error) {
	da, db, err := densePair(tagAdd, a, b)
	if err != nil {
		return nil, err
	}
	out, _ := NewDense(da.r, da.c)
	floats.AddTo(out.data, da.data, db.data)

	return out, nil
}

// Sub returns a − b. Shapes must match.
func Sub(a, b Matrix) (*Dense, error) {
	da, db, err := densePair(tagSub, a, b)
	if err != nil {
		return nil, err
	}
	out, _ := NewDense(da.r, da.c)
	floats.SubTo(out.data, da.data, db.data)

	return out, nil
}

// Hadamard returns the element-wise product a ⊙ b. Shapes must match.
func Hadamard(a, b Matrix) (*Dense, error) {
	da, db, err := densePair(tagHadamard, a, b)
	if err != nil {
		return nil, err
	}
	out, _ := NewDense(da.r, da.c)
	floats.MulTo(out.data, da.data, db.data)

	return out, nil
}

// Mul returns the matrix product a·b.
//
// Implementation:
//   - Stage 1: require a.Cols() == b.Rows() (ErrDimensionMismatch).
//   - Stage 2: row i of the result accumulates a[i,k]·(row k of b) over k,
//     skipping zero a[i,k]. Accumulation order depends only on the shapes.
//
// Complexity:
//   - Time O(r·n·c), Space O(r·c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(tagMul, err)
	}
	da, err := AsDense(a)
	if err != nil {
		return nil, matrixErrorf(tagMul, err)
	}
	db, err := AsDense(b)
	if err != nil {
		return nil, matrixErrorf(tagMul, err)
	}

	out, _ := NewDense(da.r, db.c)
	for i := 0; i < da.r; i++ {
		dst := out.data[i*db.c : (i+1)*db.c]
		for k, aik := range da.data[i*da.c : (i+1)*da.c] {
			if aik != 0 {
				floats.AddScaled(dst, aik, db.data[k*db.c:(k+1)*db.c])
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m Matrix) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(tagTranspose, err)
	}
	out, _ := NewDense(d.c, d.r)
	for k, v := range d.data {
		out.data[(k%d.c)*d.r+k/d.c] = v
	}

	return out, nil
}

// Scale returns alpha·m.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(tagScale, err)
	}
	out, _ := NewDense(d.r, d.c)
	floats.ScaleTo(out.data, alpha, d.data)

	return out, nil
}

// MatVec returns m·x for len(x) == m.Cols().
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(tagMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(tagMatVec, err)
	}
	d, err := AsDense(m)
	if err != nil {
		return nil, matrixErrorf(tagMatVec, err)
	}
	y := make([]float64, d.r)
	for i := range y {
		y[i] = floats.Dot(d.data[i*d.c:(i+1)*d.c], x)
	}

	return y, nil
}

// Outer returns u·vᵀ, a len(u)×len(v) matrix. Outer(x, x) is exactly symmetric.
// Errors: ErrInvalidDimensions for an empty u or v.
func Outer(u, v []float64) (*Dense, error) {
	out, err := NewDense(len(u), len(v))
	if err != nil {
		return nil, matrixErrorf(tagOuter, err)
	}
	for i, ui := range u {
		floats.ScaleTo(out.data[i*len(v):(i+1)*len(v)], ui, v)
	}

	return out, nil
}

// FrobeniusNorm returns √(Σ m[i,j]²), computed by floats.Norm without
// intermediate overflow.
func FrobeniusNorm(m Matrix) (float64, error) {
	d, err := AsDense(m)
	if err != nil {
		return 0, matrixErrorf(tagFrobenius, err)
	}

	return floats.Norm(d.data, 2), nil
}
