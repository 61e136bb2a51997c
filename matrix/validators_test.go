// Package matrix_test contains unit tests for the shared validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pseudoprop/matrix"
)

func TestValidateNotNil_TypedNil(t *testing.T) {
	var d *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(d), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateNotNil(MustDense(t, 1, 1)))
}

func TestValidateSymmetric(t *testing.T) {
	s := NewFilledDense(t, 2, 2, []float64{1, 2, 2 + 1e-12, 1})
	require.NoError(t, matrix.ValidateSymmetric(s, 1e-9))
	require.ErrorIs(t, matrix.ValidateSymmetric(s, 0), matrix.ErrAsymmetry)
	require.ErrorIs(t, matrix.ValidateSymmetric(MustDense(t, 2, 3), 1), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateSymmetric(s, math.NaN()), matrix.ErrNaNInf)
}

func TestValidateFinite(t *testing.T) {
	m, err := matrix.NewDenseWithOptions(1, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateFinite(m))
	require.NoError(t, m.Set(0, 1, math.NaN()))
	require.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFinite(hide{m}), matrix.ErrNaNInf)
}

func TestValidateMulCompatible(t *testing.T) {
	require.NoError(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 3, 1)))
	require.ErrorIs(t, matrix.ValidateMulCompatible(MustDense(t, 2, 3), MustDense(t, 2, 1)), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 1), matrix.ErrNilMatrix)
}
