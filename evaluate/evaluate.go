// SPDX-License-Identifier: MIT

// Package evaluate scores networks on a test set and audits how far their
// feedback weights are from the data-weighted pseudoinverse of the forward
// weights.
//
// Evaluate and Audit are pure functions of a network and data. Runner walks
// the checkpoints of a training run and turns each one into a metrics.Record.
package evaluate

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/pseudoprop/dataset"
	"github.com/katalvlaran/pseudoprop/matrix"
	"github.com/katalvlaran/pseudoprop/network"
)

var (
	// ErrNilInput indicates a nil network, loader, engine or input batch.
	ErrNilInput = errors.New("evaluate: nil input")

	// ErrOutputShape indicates a network whose output width differs from the
	// class count of the dataset.
	ErrOutputShape = errors.New("evaluate: network output does not match classes")

	// ErrConfusion indicates an empty or non-square confusion matrix.
	ErrConfusion = errors.New("evaluate: invalid confusion matrix")
)

const (
	opEvaluate   = "Evaluate"
	opErrorRatio = "ErrorRatio"
	opAudit      = "Audit"
	opRun        = "Run"
)

// evaluateErrorf wraps err with an operation tag, preserving it via %w.
func evaluateErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Result is the outcome of one pass over a test set.
type Result struct {
	Loss      float64     // summed squared error against one-hot targets
	Confusion [][]float64 // classes×classes, row = true label, column = argmax output
}

// Evaluate runs every batch of loader, in dataset order, through net.
//
// Implementation:
//   - Stage 1: forward each batch; accumulate Σ(out − onehot)².
//   - Stage 2: count (label, argmax) pairs; ties go to the lowest class index.
//
// Errors:
//   - ErrNilInput, ErrOutputShape, wrapped network and dataset errors.
func Evaluate(net *network.Network, loader *dataset.Loader) (Result, error) {
	if net == nil || loader == nil {
		return Result{}, evaluateErrorf(opEvaluate, ErrNilInput)
	}
	classes := len(loader.Dataset().Classes())
	if sizes := net.Sizes(); sizes[len(sizes)-1] != classes {
		return Result{}, evaluateErrorf(opEvaluate, fmt.Errorf("%d outputs for %d classes: %w",
			sizes[len(sizes)-1], classes, ErrOutputShape))
	}
	batches, err := loader.Epoch(nil)
	if err != nil {
		return Result{}, evaluateErrorf(opEvaluate, err)
	}

	res := Result{Confusion: make([][]float64, classes)}
	for i := range res.Confusion {
		res.Confusion[i] = make([]float64, classes)
	}
	for _, b := range batches {
		out, err := net.Forward(b.X)
		if err != nil {
			return Result{}, evaluateErrorf(opEvaluate, err)
		}
		diff, err := matrix.Sub(out, b.Y)
		if err != nil {
			return Result{}, evaluateErrorf(opEvaluate, err)
		}
		diff.Do(func(_, _ int, v float64) bool { res.Loss += v * v; return true })

		for i, label := range b.Labels {
			row, err := out.RawRow(i)
			if err != nil {
				return Result{}, evaluateErrorf(opEvaluate, err)
			}
			res.Confusion[label][floats.MaxIdx(row)]++
		}
	}

	return res, nil
}

// ErrorRatio returns 1 − trace(C)/sum(C), the fraction of misclassified samples.
func ErrorRatio(confusion [][]float64) (float64, error) {
	var trace, total float64
	for i, row := range confusion {
		if len(row) != len(confusion) {
			return 0, evaluateErrorf(opErrorRatio, ErrConfusion)
		}
		trace += row[i]
		total += floats.Sum(row)
	}
	if total <= 0 {
		return 0, evaluateErrorf(opErrorRatio, ErrConfusion)
	}

	return 1 - trace/total, nil
}
