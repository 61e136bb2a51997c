// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface.
package matrix

// Matrix is a mutable two-dimensional array of float64.
//
// *Dense is the only implementation in pseudoprop; kernels accept the
// interface so that callers can pass views or wrappers, which are copied once
// into a *Dense on entry.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At returns element (i, j), or ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set writes element (i, j), or returns ErrOutOfRange.
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy.
	Clone() Matrix
}
