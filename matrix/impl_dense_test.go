// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfRange ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfRange(t *testing.T) {
	m := MustDense(t, 2, 2)

	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
}

// TestSetRejectsNaN checks the finite-only policy and its opt-out.
func TestSetRejectsNaN(t *testing.T) {
	m := MustDense(t, 1, 1)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)

	loose, err := matrix.NewDenseWithOptions(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, loose.Set(0, 0, math.Inf(1)))
	assert.False(t, loose.IsFinite())
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, 0, 0, 2})
	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3.0))

	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
	assert.Equal(t, 3.0, MustAt(t, clone, 0, 0))
}

func TestNewDenseFrom(t *testing.T) {
	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.Inf(-1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	src := []float64{1, 2, 3, 4}
	m, err := matrix.NewDenseFrom(2, 2, src)
	require.NoError(t, err)
	src[0] = 99 // the constructor copies
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
}

func TestFromRowsAndToRows(t *testing.T) {
	_, err := matrix.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.FromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	in := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m, err := matrix.FromRows(in)
	require.NoError(t, err)
	assert.Equal(t, in, m.ToRows())

	row, err := m.RawRow(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)
	_, err = m.RawRow(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestReshapeRowMajor checks C-order reinterpretation of the element sequence.
func TestReshapeRowMajor(t *testing.T) {
	m := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	r, err := m.Reshape(3, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, r.ToRows())

	_, err = m.Reshape(4, 2)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = m.Reshape(0, 6)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDoAndApply(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	var sum float64
	m.Do(func(_, _ int, v float64) bool { sum += v; return true })
	assert.Equal(t, 10.0, sum)

	require.NoError(t, m.Apply(func(_, _ int, v float64) float64 { return v * v }))
	assert.Equal(t, [][]float64{{1, 4}, {9, 16}}, m.ToRows())

	err := m.Apply(func(_, _ int, _ float64) float64 { return math.NaN() })
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestString(t *testing.T) {
	m := NewFilledDense(t, 2, 2, []float64{1, 2.5, -3, 4})
	assert.Equal(t, "[1, 2.5]\n[-3, 4]\n", m.String())
}
