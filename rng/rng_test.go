// SPDX-License-Identifier: MIT

package rng_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pseudoprop/rng"
)

func TestFromSeed_ZeroUsesDefault(t *testing.T) {
	a := rng.FromSeed(0).Int63()
	b := rng.FromSeed(rng.DefaultSeed).Int63()
	assert.Equal(t, a, b)
}

func TestDerive_StreamsDiffer(t *testing.T) {
	assert.NotEqual(t, rng.DeriveSeed(7, rng.StreamForward), rng.DeriveSeed(7, rng.StreamFeedback))
	assert.Equal(t, rng.DeriveSeed(7, rng.StreamShuffle), rng.DeriveSeed(7, rng.StreamShuffle))
	assert.Equal(t, rng.Derive(3, 1).Int63(), rng.Derive(3, 1).Int63())
}

func TestPerm_IsPermutation(t *testing.T) {
	p := rng.Perm(50, rng.FromSeed(9))
	require.Len(t, p, 50)
	sorted := append([]int(nil), p...)
	sort.Ints(sorted)
	for i, v := range sorted {
		require.Equal(t, i, v)
	}
	assert.Equal(t, p, rng.Perm(50, rng.FromSeed(9)))
	assert.Empty(t, rng.Perm(0, nil))
}
