// SPDX-License-Identifier: MIT

package pseudo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pseudoprop/matrix"
	"github.com/katalvlaran/pseudoprop/pseudo"
)

// TestGram_HandComputed: batch [[1,0],[0,1],[1,1]] gives
// Cov = [[1/3,-1/6],[-1/6,1/3]], mean = (2/3,2/3), Γ² = [[7/9,5/18],[5/18,7/9]].
func TestGram_HandComputed(t *testing.T) {
	t.Parallel()
	batch := mustRows(t, [][]float64{{1, 0}, {0, 1}, {1, 1}})
	gram, err := pseudo.Gram(batch)
	require.NoError(t, err)

	want := mustRows(t, [][]float64{{7.0 / 9, 5.0 / 18}, {5.0 / 18, 7.0 / 9}})
	requireClose(t, want, gram, 1e-12)
	require.NoError(t, matrix.ValidateSymmetric(gram, 0))
}

// TestGram_BitIdentical repeats the estimate on the same batch.
func TestGram_BitIdentical(t *testing.T) {
	t.Parallel()
	batch := randDense(t, 50, 6, 11)
	g1, err := pseudo.Gram(batch)
	require.NoError(t, err)
	g2, err := pseudo.Gram(batch)
	require.NoError(t, err)
	assert.Equal(t, g1.ToRows(), g2.ToRows())

	g3, err := pseudo.Gram(hide{batch})
	require.NoError(t, err)
	assert.Equal(t, g1.ToRows(), g3.ToRows(), "fallback path must agree bit for bit")
}

// TestGram_EqualsSecondMoment checks the identity
// Cov + mean·meanᵀ = (Σ r·rᵀ − mean·meanᵀ)/(N−1).
func TestGram_EqualsSecondMoment(t *testing.T) {
	t.Parallel()
	const n = 40
	batch := randDense(t, n, 3, 5)
	gram, err := pseudo.Gram(batch)
	require.NoError(t, err)

	raw := mustMul(t, mustT(t, batch), batch)
	means, err := matrix.ColumnMeans(batch)
	require.NoError(t, err)
	mm, err := matrix.Outer(means, means)
	require.NoError(t, err)
	a, err := matrix.Scale(raw, 1.0/(n-1))
	require.NoError(t, err)
	b, err := matrix.Scale(mm, 1.0/(n-1))
	require.NoError(t, err)
	want, err := matrix.Sub(a, b)
	require.NoError(t, err)

	requireClose(t, want, gram, 1e-12)
}

func TestGram_Errors(t *testing.T) {
	t.Parallel()
	_, err := pseudo.Gram(mustRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, pseudo.ErrInsufficientData)

	_, err = pseudo.Gram(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	bad, err := matrix.NewDenseWithOptions(2, 2, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, bad.Set(1, 1, math.Inf(1)))
	_, err = pseudo.Gram(bad)
	require.ErrorIs(t, err, pseudo.ErrNumericalInstability)
}
