// SPDX-License-Identifier: MIT

package pseudo_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pseudoprop/matrix"
)

// hide masks the concrete *Dense type to force interface fallbacks.
type hide struct{ matrix.Matrix }

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// randDense draws entries from N(0,1) with a fixed seed.
func randDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = rng.NormFloat64()
	}
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

func mustMul(t *testing.T, a, b matrix.Matrix) *matrix.Dense {
	t.Helper()
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)

	return p
}

func mustT(t *testing.T, a matrix.Matrix) *matrix.Dense {
	t.Helper()
	p, err := matrix.Transpose(a)
	require.NoError(t, err)

	return p
}

func requireClose(t *testing.T, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}
