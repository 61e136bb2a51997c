// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/pseudoprop/rng"
)

// YinYang geometry.
const (
	YinYangRadius    = 0.5 // R, radius of the big circle
	YinYangDotRadius = 0.1 // r, radius of the two dots
)

// YinYang class indices.
const (
	ClassYin = iota
	ClassYang
	ClassDot
)

var yinYangClasses = []string{"yin", "yang", "dot"}

// YinYang is the two-dimensional yin-yang classification task. Points are
// drawn uniformly in [0, 2R]² inside the big circle and labelled yin, yang or
// dot. Each input is [x, y, 1−x, 1−y] so that every sample has the same norm
// offset; classes are balanced by rejection sampling.
type YinYang struct{ table }

// NewYinYang draws size samples from seed.
func NewYinYang(size int, seed int64) (*YinYang, error) {
	if size <= 0 {
		return nil, fmt.Errorf("yinyang size %d: %w", size, ErrInvalidSize)
	}
	r := rng.FromSeed(seed)
	y := &YinYang{table{
		inputs:  make([][]float64, size),
		labels:  make([]int, size),
		dim:     4,
		classes: yinYangClasses,
	}}
	for i := 0; i < size; i++ {
		goal := i % len(yinYangClasses)
		px, py := sampleYinYang(r, goal)
		y.inputs[i] = []float64{px, py, 1 - px, 1 - py}
		y.labels[i] = goal
	}

	return y, nil
}

// sampleYinYang rejects points until one inside the big circle has class goal.
func sampleYinYang(r *rand.Rand, goal int) (float64, float64) {
	for {
		x := r.Float64() * 2 * YinYangRadius
		y := r.Float64() * 2 * YinYangRadius
		if math.Hypot(x-YinYangRadius, y-YinYangRadius) > YinYangRadius {
			continue
		}
		if YinYangClass(x, y) == goal {
			return x, y
		}
	}
}

// YinYangClass labels a point of the [0, 2R]² square.
func YinYangClass(x, y float64) int {
	dRight := math.Hypot(x-1.5*YinYangRadius, y-YinYangRadius)
	dLeft := math.Hypot(x-0.5*YinYangRadius, y-YinYangRadius)
	if dRight < YinYangDotRadius || dLeft < YinYangDotRadius {
		return ClassDot
	}
	inLeftBody := dLeft <= 0.5*YinYangRadius
	upperOutside := y > YinYangRadius && dRight > 0.5*YinYangRadius
	if inLeftBody || upperOutside {
		return ClassYin
	}

	return ClassYang
}
