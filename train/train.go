// SPDX-License-Identifier: MIT

// Package train fits a network with mini-batch SGD and saves the checkpoints
// that the evaluate package later sweeps.
package train

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/katalvlaran/pseudoprop/checkpoint"
	"github.com/katalvlaran/pseudoprop/dataset"
	"github.com/katalvlaran/pseudoprop/matrix"
	"github.com/katalvlaran/pseudoprop/network"
	"github.com/katalvlaran/pseudoprop/pseudo"
	"github.com/katalvlaran/pseudoprop/rng"
)

var (
	// ErrNilInput indicates a nil network, store or loader.
	ErrNilInput = errors.New("train: nil input")

	// ErrInvalidSchedule indicates a learning rate or recompute period out of
	// range, or a sweep that does not fit the training set.
	ErrInvalidSchedule = errors.New("train: invalid schedule")
)

// LogPrefix is the prefix of every line written by a Trainer logger.
const LogPrefix = "Train model -- "

// DefaultRecomputeEvery refreshes the pseudo-backprop feedback weights after every batch.
const DefaultRecomputeEvery = 1

// NewLogger returns a logger writing to w. LogPrefix follows the timestamp,
// directly ahead of the message.
func NewLogger(w io.Writer) *log.Logger {
	return log.New(w, LogPrefix, log.LstdFlags|log.Lmsgprefix)
}

// Trainer holds the schedule of one training run.
type Trainer struct {
	Store          *checkpoint.Store
	Sweep          checkpoint.Sweep
	Train          *dataset.Loader
	LearningRate   float64
	RecomputeEvery int   // batches between feedback refreshes of pseudo modes; 0 uses DefaultRecomputeEvery
	Seed           int64 // shuffle seed
	Logger         *log.Logger
}

// Summary reports what a run did.
type Summary struct {
	Batches    int                // SGD steps taken
	Saved      []checkpoint.Point // checkpoints written, in order
	EpochLoss  []float64          // mean squared error per sample, per epoch
	Recomputed int                // feedback refreshes of pseudo modes
}

// Run trains net for Sweep.Epochs() epochs.
//
// Implementation:
//   - Stage 1: save the untrained state as point 0.
//   - Stage 2: per epoch, shuffle the training set and take one SGD step per
//     batch; pseudo modes refresh B every RecomputeEvery steps.
//   - Stage 3: whenever the images seen in the epoch reach the next multiple
//     of Sweep.PerImages(), save that point. With a batch size that does not
//     divide PerImages the state after the first batch past the mark is saved.
//
// Behavior highlights:
//   - ctx is checked between batches; on cancellation Run returns ctx.Err()
//     with the checkpoints saved so far.
//   - The shuffle order depends only on Seed.
//   - GenPseudoBackprop estimates Γ from every input seen since the previous
//     refresh. A refresh due with fewer than pseudo.MinSamples inputs waits
//     for the next batch, so a trailing one-sample batch never fails a run.
//
// Errors:
//   - ErrNilInput, ErrInvalidSchedule, ctx.Err(), wrapped network and checkpoint errors.
func (t *Trainer) Run(ctx context.Context, net *network.Network) (Summary, error) {
	var sum Summary
	if err := t.validate(net); err != nil {
		return sum, err
	}
	every := t.RecomputeEvery
	if every == 0 {
		every = DefaultRecomputeEvery
	}
	logger := t.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var win window

	if err := t.save(net, checkpoint.Point{}, &sum); err != nil {
		return sum, err
	}
	logger.Printf("INFO: training %s %v for %d epochs, checkpoint every %d images",
		net.Mode(), net.Sizes(), t.Sweep.Epochs(), t.Sweep.PerImages())

	shuffle := rng.Derive(t.Seed, rng.StreamShuffle)
	for epoch := 0; epoch < t.Sweep.Epochs(); epoch++ {
		batches, err := t.Train.Epoch(shuffle)
		if err != nil {
			return sum, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		var (
			images, saved int
			loss          float64
		)
		for _, b := range batches {
			if err := ctx.Err(); err != nil {
				logger.Printf("INFO: stopped in epoch %d after %d images: %v", epoch, images, err)
				return sum, err
			}
			g, err := net.Gradients(b.X, b.Y)
			if err != nil {
				return sum, fmt.Errorf("epoch %d: %w", epoch, err)
			}
			if err = net.Apply(g, t.LearningRate); err != nil {
				return sum, fmt.Errorf("epoch %d: %w", epoch, err)
			}
			sum.Batches++
			loss += g.Loss
			if net.Mode().UsesPseudoinverse() {
				if err = win.add(b.X); err != nil {
					return sum, fmt.Errorf("epoch %d: %w", epoch, err)
				}
				if win.batches >= every && (net.Mode() != network.GenPseudoBackprop || win.rows >= pseudo.MinSamples) {
					x, err := win.inputs()
					if err != nil {
						return sum, fmt.Errorf("epoch %d: %w", epoch, err)
					}
					if err = net.UpdateBackward(x); err != nil {
						return sum, fmt.Errorf("epoch %d: %w", epoch, err)
					}
					win.reset()
					sum.Recomputed++
				}
			}

			images += len(b.Labels)
			for saved < t.Sweep.PerEpoch() && images >= (saved+1)*t.Sweep.PerImages() {
				saved++
				p, err := t.Sweep.PointFor(epoch, saved*t.Sweep.PerImages())
				if err != nil {
					return sum, err
				}
				if err = t.save(net, p, &sum); err != nil {
					return sum, err
				}
			}
		}
		mean := loss / float64(images)
		if math.IsNaN(mean) || math.IsInf(mean, 0) {
			logger.Printf("WARNING: epoch %d loss is not finite", epoch)
		}
		sum.EpochLoss = append(sum.EpochLoss, mean)
		logger.Printf("INFO: epoch %d done, loss %.6f", epoch, mean)
	}

	return sum, nil
}

// validate checks the schedule against the network and the training set.
func (t *Trainer) validate(net *network.Network) error {
	if net == nil || t.Store == nil || t.Train == nil {
		return ErrNilInput
	}
	if t.LearningRate <= 0 || math.IsNaN(t.LearningRate) || math.IsInf(t.LearningRate, 0) || t.RecomputeEvery < 0 {
		return fmt.Errorf("lr=%v recompute=%d: %w", t.LearningRate, t.RecomputeEvery, ErrInvalidSchedule)
	}
	if t.Sweep.PerImages() <= 0 || t.Sweep.PerEpoch() != t.Train.Dataset().Len()/t.Sweep.PerImages() {
		return fmt.Errorf("sweep does not fit %d training images: %w", t.Train.Dataset().Len(), ErrInvalidSchedule)
	}

	return nil
}

// save writes the current state for p and records it.
func (t *Trainer) save(net *network.Network, p checkpoint.Point, sum *Summary) error {
	if err := t.Store.Save(p, net.State()); err != nil {
		return fmt.Errorf("checkpoint %d: %w", p.Index, err)
	}
	sum.Saved = append(sum.Saved, p)

	return nil
}

// window collects the batch inputs seen since the last feedback refresh.
type window struct {
	batches, rows, cols int
	data                []float64
}

func (w *window) add(x *matrix.Dense) error {
	if w.rows > 0 && x.Cols() != w.cols {
		return fmt.Errorf("window: %d columns, want %d: %w", x.Cols(), w.cols, matrix.ErrDimensionMismatch)
	}
	w.cols = x.Cols()
	for i := 0; i < x.Rows(); i++ {
		row, err := x.RawRow(i)
		if err != nil {
			return err
		}
		w.data = append(w.data, row...)
	}
	w.rows += x.Rows()
	w.batches++

	return nil
}

// inputs stacks the collected rows into one rows×cols batch.
func (w *window) inputs() (*matrix.Dense, error) {
	return matrix.NewDenseFrom(w.rows, w.cols, w.data)
}

func (w *window) reset() {
	w.batches, w.rows = 0, 0
	w.data = w.data[:0]
}
