// SPDX-License-Identifier: MIT

package pseudo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pseudoprop/pseudo"
)

func TestPinv_Invertible(t *testing.T) {
	t.Parallel()
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	p, err := pseudo.Pinv(a)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{-2, 1}, {1.5, -0.5}}), p, 1e-12)
}

// TestPinv_RankDeficient checks the minimum-norm solution of a rank-one input.
func TestPinv_RankDeficient(t *testing.T) {
	t.Parallel()
	p, err := pseudo.Pinv(mustRows(t, [][]float64{{1, 1}, {1, 1}}))
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{0.25, 0.25}, {0.25, 0.25}}), p, 1e-12)

	row, err := pseudo.Pinv(mustRows(t, [][]float64{{1, 1}}))
	require.NoError(t, err)
	assert.Equal(t, 2, row.Rows())
	assert.Equal(t, 1, row.Cols())
	requireClose(t, mustRows(t, [][]float64{{0.5}, {0.5}}), row, 1e-12)
}

// TestPinv_PenroseConditions verifies A·P·A = A and P·A·P = P on a wide matrix.
func TestPinv_PenroseConditions(t *testing.T) {
	t.Parallel()
	a := randDense(t, 3, 5, 9)
	p, err := pseudo.Pinv(a)
	require.NoError(t, err)

	requireClose(t, a, mustMul(t, mustMul(t, a, p), a), 1e-10)
	requireClose(t, p, mustMul(t, mustMul(t, p, a), p), 1e-10)
}

func TestPinv_ZeroMatrix(t *testing.T) {
	t.Parallel()
	p, err := pseudo.Pinv(mustRows(t, [][]float64{{0, 0, 0}, {0, 0, 0}}))
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{0, 0}, {0, 0}, {0, 0}}), p, 0)
}

// TestPinv_RCond drops the small singular value once it falls under the cut-off.
func TestPinv_RCond(t *testing.T) {
	t.Parallel()
	a := mustRows(t, [][]float64{{1, 0}, {0, 1e-3}})
	p, err := pseudo.NewEngine(pseudo.WithRCond(1e-2)).Pinv(a)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{1, 0}, {0, 0}}), p, 1e-12)

	full, err := pseudo.Pinv(a)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{1, 0}, {0, 1000}}), full, 1e-9)
}

// TestPinv_DefaultCutoffScalesWithShape compares the automatic cut-off of a
// 20×2 input (20·2⁻⁵² ≈ 4.4e-15) with a fixed rcond of 1e-15.
func TestPinv_DefaultCutoffScalesWithShape(t *testing.T) {
	t.Parallel()
	rows := make([][]float64, 20)
	for i := range rows {
		rows[i] = make([]float64, 2)
	}
	rows[0][0], rows[1][1] = 1, 2e-15
	a := mustRows(t, rows)

	auto, err := pseudo.Pinv(a)
	require.NoError(t, err)
	v, err := auto.At(1, 1)
	require.NoError(t, err)
	assert.Zero(t, v)

	fixed, err := pseudo.NewEngine(pseudo.WithRCond(1e-15)).Pinv(a)
	require.NoError(t, err)
	v, err = fixed.At(1, 1)
	require.NoError(t, err)
	assert.InEpsilon(t, 5e14, v, 1e-9)
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	require.Panics(t, func() { pseudo.WithRCond(-1) })
	require.Panics(t, func() { pseudo.WithSymmetryTolerance(-1) })

	o := pseudo.NewEngine().Options()
	assert.Equal(t, pseudo.DefaultRCond, o.RCond())
	assert.Equal(t, pseudo.DefaultSymmetryTolerance, o.SymmetryTolerance())
}
