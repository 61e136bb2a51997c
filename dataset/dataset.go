// SPDX-License-Identifier: MIT

// Package dataset provides the synthetic classification datasets used by
// pseudoprop and a mini-batch loader that turns them into matrix batches.
package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize indicates a non-positive dataset size, dimension or class count.
	ErrInvalidSize = errors.New("dataset: invalid size")

	// ErrUnknownDataset indicates a dataset name that is not registered.
	ErrUnknownDataset = errors.New("dataset: unknown dataset")

	// ErrIndex indicates a sample index outside [0, Len()).
	ErrIndex = errors.New("dataset: sample index out of range")
)

// Dataset is a finite, indexable collection of labelled samples.
type Dataset interface {
	// Len returns the number of samples.
	Len() int
	// InputDim returns the width of every input vector.
	InputDim() int
	// Classes returns the class names; labels index into it.
	Classes() []string
	// Sample returns a copy of sample i and its label.
	Sample(i int) ([]float64, int, error)
}

// Names of the built-in datasets, as used in parameter files.
const (
	NameYinYang  = "yinyang"
	NameGaussian = "gaussian"
)

// Split selects the training or the test draw of a dataset.
type Split int

const (
	Train Split = iota
	Test
)

// New builds a named dataset of the given size. The split and the seed select
// independent streams, so train and test sets never coincide.
func New(name string, size int, split Split, seed int64) (Dataset, error) {
	switch name {
	case NameYinYang:
		return NewYinYang(size, splitSeed(seed, split))
	case NameGaussian:
		return NewGaussian(size, DefaultGaussianDim, DefaultGaussianClasses, splitSeed(seed, split))
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownDataset)
	}
}

// table is the in-memory storage shared by the built-in datasets.
type table struct {
	inputs  [][]float64
	labels  []int
	dim     int
	classes []string
}

func (t *table) Len() int          { return len(t.labels) }
func (t *table) InputDim() int     { return t.dim }
func (t *table) Classes() []string { return append([]string(nil), t.classes...) }

func (t *table) Sample(i int) ([]float64, int, error) {
	if i < 0 || i >= len(t.labels) {
		return nil, 0, fmt.Errorf("sample %d: %w", i, ErrIndex)
	}

	return append([]float64(nil), t.inputs[i]...), t.labels[i], nil
}
