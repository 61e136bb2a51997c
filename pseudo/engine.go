// SPDX-License-Identifier: MIT

package pseudo

import "github.com/katalvlaran/pseudoprop/matrix"

// Engine is the explicit execution context of the pseudo-backprop core.
// It carries the numeric policy (pseudoinverse cut-off, symmetry tolerance)
// and nothing else: every method is a pure function of its arguments, so one
// Engine may be shared by concurrent callers.
type Engine struct {
	opts Options
}

// NewEngine resolves opts against the documented defaults.
func NewEngine(opts ...Option) *Engine {
	return &Engine{opts: gatherOptions(opts...)}
}

// Options returns the resolved numeric policy.
func (e *Engine) Options() Options { return e.opts }

// MinSamples is the smallest batch Gram accepts; the unbiased covariance
// divides by N−1.
const MinSamples = 2

// defaultEngine backs the package-level facades.
var defaultEngine = NewEngine()

// validateBatch checks a sample-per-row batch: non-nil, N >= MinSamples, all finite.
func validateBatch(batch matrix.Matrix) error {
	if err := matrix.ValidateNotNil(batch); err != nil {
		return pseudoErrorf(opValidateBatch, err)
	}
	if batch.Rows() < MinSamples {
		return pseudoErrorf(opValidateBatch, ErrInsufficientData)
	}
	if err := matrix.ValidateFinite(batch); err != nil {
		return unstableErrorf(opValidateBatch, err)
	}

	return nil
}
