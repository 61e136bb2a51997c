// SPDX-License-Identifier: MIT

// Package matrix: the Dense value type.
//
// A Dense keeps its elements in one flat slice, row after row, so element
// (i, j) lives at offset i*cols + j. Every numeric value that crosses a
// package boundary in pseudoprop (batches, weights, Γ) is a *Dense.
//
// Cost summary:
//   - NewDense, NewDenseFrom, FromRows, Clone, Reshape, ToRows: O(r*c).
//   - At, Set: O(1); RawRow: O(c).

package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operation tags of Dense methods and constructors.
const (
	tagAt       = "At"
	tagSet      = "Set"
	tagApply    = "Apply"
	tagRow      = "RawRow"
	tagFrom     = "NewDenseFrom"
	tagFromRows = "FromRows"
	tagReshape  = "Reshape"
)

// cellErrorf tags err with a Dense method and the offending cell.
func cellErrorf(tag string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", tag, row, col, err)
}

// Dense is a row-major matrix of float64.
type Dense struct {
	r, c   int
	data   []float64 // len == r*c
	finite bool      // Set and Apply reject NaN/±Inf when true
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense returns a rows×cols matrix of zeros.
//
// Errors:
//   - ErrInvalidDimensions when rows or cols is not positive. A 0×0 matrix is
//     never a valid batch or weight matrix, so it is refused at construction.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols), finite: DefaultValidateNaNInf}, nil
}

// NewDenseFrom copies data, read row by row, into a new rows×cols matrix.
//
// Implementation:
//   - Stage 1: allocate the shape (ErrInvalidDimensions).
//   - Stage 2: check len(data) == rows*cols (ErrDimensionMismatch).
//   - Stage 3: refuse NaN/±Inf (ErrNaNInf, tagged with the cell), then copy.
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(tagFrom, err)
	}
	if len(data) != len(m.data) {
		return nil, matrixErrorf(tagFrom, fmt.Errorf("%d values for %dx%d: %w", len(data), rows, cols, ErrDimensionMismatch))
	}
	for k, v := range data {
		if !isFinite(v) {
			return nil, cellErrorf(tagFrom, k/cols, k%cols, ErrNaNInf)
		}
	}
	copy(m.data, data)

	return m, nil
}

// FromRows stacks equally long rows into a matrix.
// Errors: ErrInvalidDimensions (no rows or empty first row), ErrDimensionMismatch (ragged).
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, matrixErrorf(tagFromRows, ErrInvalidDimensions)
	}
	width := len(rows[0])
	flat := make([]float64, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, matrixErrorf(tagFromRows, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), width, ErrDimensionMismatch))
		}
		flat = append(flat, row...)
	}

	return NewDenseFrom(len(rows), width, flat)
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns Rows() and Cols().
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// offset maps (row, col) to its slot in data.
func (m *Dense) offset(row, col int) (int, bool) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, false
	}

	return row*m.c + col, true
}

// At returns element (row, col); ErrOutOfRange outside the shape.
func (m *Dense) At(row, col int) (float64, error) {
	k, ok := m.offset(row, col)
	if !ok {
		return 0, cellErrorf(tagAt, row, col, ErrOutOfRange)
	}

	return m.data[k], nil
}

// Set writes v at (row, col).
// Errors: ErrOutOfRange; ErrNaNInf for a non-finite v unless the matrix was
// built with WithNoValidateNaNInf.
func (m *Dense) Set(row, col int, v float64) error {
	k, ok := m.offset(row, col)
	if !ok {
		return cellErrorf(tagSet, row, col, ErrOutOfRange)
	}
	if m.finite && !isFinite(v) {
		return cellErrorf(tagSet, row, col, ErrNaNInf)
	}
	m.data[k] = v

	return nil
}

// Clone returns an independent copy with the same numeric policy.
func (m *Dense) Clone() Matrix {
	return &Dense{r: m.r, c: m.c, data: append([]float64(nil), m.data...), finite: m.finite}
}

// RawRow returns a copy of row i.
func (m *Dense) RawRow(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, cellErrorf(tagRow, i, 0, ErrOutOfRange)
	}

	return append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...), nil
}

// ToRows returns the elements as a fresh slice of rows, the form used by
// JSON snapshots.
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...)
	}

	return out
}

// Reshape returns a copy of m with shape rows×cols and the same row-major
// element sequence.
// Errors: ErrInvalidDimensions, ErrDimensionMismatch when the element counts differ.
func (m *Dense) Reshape(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(tagReshape, ErrInvalidDimensions)
	}
	if rows*cols != len(m.data) {
		return nil, matrixErrorf(tagReshape, fmt.Errorf("%dx%d to %dx%d: %w", m.r, m.c, rows, cols, ErrDimensionMismatch))
	}

	return &Dense{r: rows, c: cols, data: append([]float64(nil), m.data...), finite: m.finite}, nil
}

// String prints one bracketed line per row. Meant for logs and test failures.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j, v := range m.data[i*m.c : (i+1)*m.c] {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// Do calls f on every element in row-major order until f returns false.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	for k, v := range m.data {
		if !f(k/m.c, k%m.c, v) {
			return
		}
	}
}

// Apply overwrites every element with f(i, j, v), in row-major order.
// Under the finite policy the first non-finite result stops the walk with
// ErrNaNInf; elements already visited keep their new values, so callers that
// need all-or-nothing apply f to a Clone.
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	for k, v := range m.data {
		i, j := k/m.c, k%m.c
		nv := f(i, j, v)
		if m.finite && !isFinite(nv) {
			return cellErrorf(tagApply, i, j, ErrNaNInf)
		}
		m.data[k] = nv
	}

	return nil
}

// IsFinite reports whether no element is NaN or ±Inf.
func (m *Dense) IsFinite() bool {
	for _, v := range m.data {
		if !isFinite(v) {
			return false
		}
	}

	return true
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
