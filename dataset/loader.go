// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/pseudoprop/matrix"
	"github.com/katalvlaran/pseudoprop/rng"
)

// Batch is one mini-batch: inputs (N×InputDim), one-hot targets (N×classes)
// and the integer labels.
type Batch struct {
	X      *matrix.Dense
	Y      *matrix.Dense
	Labels []int
}

// Loader slices a dataset into mini-batches of a fixed size; the last batch
// may be smaller.
type Loader struct {
	ds        Dataset
	batchSize int
}

// NewLoader validates batchSize and binds it to ds.
func NewLoader(ds Dataset, batchSize int) (*Loader, error) {
	if ds == nil || batchSize <= 0 {
		return nil, fmt.Errorf("loader batch size %d: %w", batchSize, ErrInvalidSize)
	}

	return &Loader{ds: ds, batchSize: batchSize}, nil
}

// Dataset returns the underlying dataset.
func (l *Loader) Dataset() Dataset { return l.ds }

// BatchSize returns the configured batch size.
func (l *Loader) BatchSize() int { return l.batchSize }

// NumBatches returns ⌈Len/batchSize⌉.
func (l *Loader) NumBatches() int {
	return (l.ds.Len() + l.batchSize - 1) / l.batchSize
}

// Epoch returns every batch of one pass. A nil r keeps dataset order;
// otherwise the sample order is a permutation drawn from r.
func (l *Loader) Epoch(r *rand.Rand) ([]Batch, error) {
	n := l.ds.Len()
	order := make([]int, n)
	if r == nil {
		for i := range order {
			order[i] = i
		}
	} else {
		order = rng.Perm(n, r)
	}

	out := make([]Batch, 0, l.NumBatches())
	for start := 0; start < n; start += l.batchSize {
		end := min(start+l.batchSize, n)
		b, err := l.batch(order[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, nil
}

// batch assembles the samples at idx into matrices.
func (l *Loader) batch(idx []int) (Batch, error) {
	dim, classes := l.ds.InputDim(), len(l.ds.Classes())
	xs := make([]float64, 0, len(idx)*dim)
	ys := make([]float64, len(idx)*classes)
	labels := make([]int, len(idx))
	for row, i := range idx {
		x, label, err := l.ds.Sample(i)
		if err != nil {
			return Batch{}, err
		}
		if len(x) != dim || label < 0 || label >= classes {
			return Batch{}, fmt.Errorf("sample %d: %w", i, ErrInvalidSize)
		}
		xs = append(xs, x...)
		ys[row*classes+label] = 1
		labels[row] = label
	}
	X, err := matrix.NewDenseFrom(len(idx), dim, xs)
	if err != nil {
		return Batch{}, err
	}
	Y, err := matrix.NewDenseFrom(len(idx), classes, ys)
	if err != nil {
		return Batch{}, err
	}

	return Batch{X: X, Y: Y, Labels: labels}, nil
}
