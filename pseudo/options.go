// SPDX-License-Identifier: MIT

// Package pseudo: functional configuration of the numeric policy.
// Options are resolved once in NewEngine; an Engine never changes afterwards.
package pseudo

import "math"

// Numeric policy defaults.
const (
	// DefaultRCond selects the automatic pseudoinverse cut-off
	// max(rows, cols)·machineEpsilon relative to the largest singular value.
	DefaultRCond = 0.0

	// DefaultSymmetryTolerance bounds |A[i,j]-A[j,i]| relative to max(1, max|A|)
	// for inputs of SqrtSym.
	DefaultSymmetryTolerance = 1e-9
)

// machineEpsilon is the float64 unit roundoff used by the automatic cut-off.
const machineEpsilon = 0x1p-52

const (
	panicRCondInvalid  = "pseudo: WithRCond: rcond must be finite, non-negative"
	panicSymTolInvalid = "pseudo: WithSymmetryTolerance: tol must be finite, non-negative"
)

// Option mutates internal options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	rcond  float64 // 0 = automatic
	symTol float64
}

// RCond returns the configured relative cut-off (0 means automatic).
func (o Options) RCond() float64 { return o.rcond }

// SymmetryTolerance returns the relative tolerance used by SqrtSym.
func (o Options) SymmetryTolerance() float64 { return o.symTol }

// WithRCond fixes the relative singular-value cut-off of Pinv:
// singular values s <= rcond·s_max are treated as zero. Zero restores the
// automatic cut-off.
func WithRCond(rcond float64) Option {
	if math.IsNaN(rcond) || math.IsInf(rcond, 0) || rcond < 0 {
		panic(panicRCondInvalid)
	}

	return func(o *Options) { o.rcond = rcond }
}

// WithSymmetryTolerance sets the relative symmetry tolerance for SqrtSym.
func WithSymmetryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymTolInvalid)
	}

	return func(o *Options) { o.symTol = tol }
}

// gatherOptions applies user-provided Option setters on top of defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		rcond:  DefaultRCond,
		symTol: DefaultSymmetryTolerance,
	}
	for _, set := range user {
		set(&o) // last-writer-wins
	}

	return o
}
