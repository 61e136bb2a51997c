// SPDX-License-Identifier: MIT

package evaluate

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/katalvlaran/pseudoprop/checkpoint"
	"github.com/katalvlaran/pseudoprop/dataset"
	"github.com/katalvlaran/pseudoprop/matrix"
	"github.com/katalvlaran/pseudoprop/metrics"
	"github.com/katalvlaran/pseudoprop/network"
	"github.com/katalvlaran/pseudoprop/pseudo"
)

// LogPrefix is the prefix of every line written by a Runner logger.
const LogPrefix = "Test model -- "

// NewLogger returns a logger writing to w. LogPrefix follows the timestamp,
// directly ahead of the message.
func NewLogger(w io.Writer) *log.Logger {
	return log.New(w, LogPrefix, log.LstdFlags|log.Lmsgprefix)
}

// Runner evaluates the checkpoints of one training run.
type Runner struct {
	Store  *checkpoint.Store
	Sweep  checkpoint.Sweep
	Test   *dataset.Loader
	Engine *pseudo.Engine // nil uses the network's engine
	Logger *log.Logger    // nil discards
}

// Summary reports what a run did.
type Summary struct {
	Evaluated int   // checkpoints appended to the series
	Skipped   []int // sweep indices that failed and were skipped
}

// Run evaluates the sweep from index from into a new series.
// See RunInto.
func (r *Runner) Run(ctx context.Context, net *network.Network, from int) (*metrics.Series, Summary, error) {
	if net == nil {
		return nil, Summary{}, evaluateErrorf(opRun, ErrNilInput)
	}
	series := metrics.NewSeries(net.NumLayers())
	sum, err := r.RunInto(ctx, net, series, from)

	return series, sum, err
}

// RunInto evaluates the sweep points from, from+1, ... and appends one record
// per checkpoint to series.
//
// Behavior highlights:
//   - Each checkpoint is one unit: load, evaluate, audit, append. A failure
//     anywhere in the unit leaves series unchanged, is logged as a WARNING and
//     is reported in Summary.Skipped; the run continues.
//   - ctx is checked before every checkpoint; on cancellation RunInto returns
//     ctx.Err() and series holds the records appended so far.
//   - Audit activities are computed on the whole test set in dataset order.
//
// Errors:
//   - ErrNilInput, checkpoint.ErrPointIndex for from outside [0, Len()],
//     metrics.ErrRecordShape when series does not match the network,
//     ctx.Err(), wrapped dataset errors while assembling the test inputs.
func (r *Runner) RunInto(ctx context.Context, net *network.Network, series *metrics.Series, from int) (Summary, error) {
	var sum Summary
	if net == nil || series == nil || r.Store == nil || r.Test == nil {
		return sum, evaluateErrorf(opRun, ErrNilInput)
	}
	if series.Layers() != net.NumLayers() {
		return sum, evaluateErrorf(opRun, metrics.ErrRecordShape)
	}
	if from < 0 || from > r.Sweep.Len() {
		return sum, evaluateErrorf(opRun, fmt.Errorf("from %d: %w", from, checkpoint.ErrPointIndex))
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	x, err := testInputs(r.Test.Dataset())
	if err != nil {
		return sum, evaluateErrorf(opRun, err)
	}

	logger.Printf("INFO: evaluating checkpoints %d..%d from %s", from, r.Sweep.Len()-1, r.Store.Dir())
	for p := range r.Sweep.From(from) {
		if err := ctx.Err(); err != nil {
			logger.Printf("INFO: stopped before checkpoint %d: %v", p.Index, err)
			return sum, err
		}
		rec, err := r.evaluatePoint(net, p, x)
		if err == nil {
			err = series.Append(rec)
		}
		if err != nil {
			logger.Printf("WARNING: skipping checkpoint %d (epoch %d, images %d): %v", p.Index, p.Epoch, p.Images, err)
			sum.Skipped = append(sum.Skipped, p.Index)
			continue
		}
		sum.Evaluated++
		logger.Printf("INFO: checkpoint %d (epoch %d, images %d): error ratio %.4f, loss %.4f",
			p.Index, p.Epoch, p.Images, rec.ErrorRatio, rec.Loss)
	}

	return sum, nil
}

// evaluatePoint loads p into net and builds its record.
func (r *Runner) evaluatePoint(net *network.Network, p checkpoint.Point, x *matrix.Dense) (metrics.Record, error) {
	st, err := r.Store.Load(p)
	if err != nil {
		return metrics.Record{}, err
	}
	if err = net.Load(st); err != nil {
		return metrics.Record{}, err
	}
	res, err := Evaluate(net, r.Test)
	if err != nil {
		return metrics.Record{}, err
	}
	ratio, err := ErrorRatio(res.Confusion)
	if err != nil {
		return metrics.Record{}, err
	}
	audit, err := Audit(r.Engine, net, x)
	if err != nil {
		return metrics.Record{}, err
	}

	return metrics.Record{
		Index:         p.Index,
		Epochs:        r.Sweep.EpochFraction(p.Index),
		Images:        r.Sweep.ImagesSeen(p.Index),
		ErrorRatio:    ratio,
		Loss:          res.Loss,
		Mismatch:      audit.Mismatch,
		ForwardNorms:  audit.ForwardNorms,
		BackwardNorms: audit.BackwardNorms,
		Confusion:     res.Confusion,
	}, nil
}

// testInputs stacks every input of ds, in order, into one Len×InputDim batch.
func testInputs(ds dataset.Dataset) (*matrix.Dense, error) {
	all, err := dataset.NewLoader(ds, ds.Len())
	if err != nil {
		return nil, err
	}
	batches, err := all.Epoch(nil)
	if err != nil {
		return nil, err
	}

	return batches[0].X, nil
}
