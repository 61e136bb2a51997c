// SPDX-License-Identifier: MIT

// Package matrix: numeric policy as functional options.
//
// Options are resolved against the Default* constants below, last writer
// wins. Option constructors panic on values that can only come from a
// programming error (a NaN tolerance, say); nothing else in the package panics.
package matrix

import "math"

const (
	// DefaultEpsilon is the absolute tolerance used by symmetry checks and
	// approximate comparisons.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf makes Set and Apply refuse non-finite values.
	DefaultValidateNaNInf = true
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option adjusts an Options value.
type Option func(*Options)

// Options is the resolved numeric policy.
type Options struct {
	eps    float64
	finite bool
}

// Epsilon returns the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether non-finite values are refused.
func (o Options) ValidateNaNInf() bool { return o.finite }

// WithEpsilon sets the tolerance. It panics when eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf refuses non-finite values in Set and Apply.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.finite = true }
}

// WithNoValidateNaNInf lets Set and Apply store NaN and ±Inf, for tests and
// diagnostics that need a corrupted matrix on purpose.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.finite = false }
}

// NewMatrixOptions resolves opts against the defaults.
func NewMatrixOptions(opts ...Option) Options { return gatherOptions(opts...) }

func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon, finite: DefaultValidateNaNInf}
	for _, set := range opts {
		set(&o)
	}

	return o
}

// NewDenseWithOptions is NewDense under an explicit numeric policy.
func NewDenseWithOptions(rows, cols int, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	m.finite = gatherOptions(opts...).finite

	return m, nil
}
