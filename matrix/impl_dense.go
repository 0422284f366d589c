// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Kernels in this package operate on the flat data slice directly (see impl_gauss_jordan.go).
//   - 0×k shapes are legal: a system without equations is a 0×(n+1) matrix.
//   - Clone before reducing if the raw system is needed again; reduction is in place.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); row swap: O(c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
	ctxRow = "Row" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Keeps the sentinel reachable through %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>=0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// rows==0 or cols==0 is legal; negative dimensions return ErrInvalidDimensions.
//
// AI-Hints:
//   - Linear systems with no equations are 0×(n+1) augmented matrices; elimination
//     over them is a no-op that classifies every variable as free.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	// Zero-length buffer is legal when rows==0 or cols==0 (len == rows*cols).
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFromRows copies a rectangular [][]float64 into a fresh Dense.
// Every row must have the same length and hold only finite values.
//
// Errors:
//   - ErrDimensionMismatch for ragged input.
//   - ErrNaNInf for non-finite entries.
//
// Complexity: O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	var cols int
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	d, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < len(rows); i++ {
		if len(rows[i]) != cols {
			return nil, denseErrorf(ctxRow, i, len(rows[i]), ErrDimensionMismatch)
		}
		for j = 0; j < cols; j++ {
			if err = ValidateFinite(rows[i][j]); err != nil {
				return nil, denseErrorf(ctxSet, i, j, err)
			}
			d.data[i*cols+j] = rows[i][j]
		}
	}

	return d, nil
}

// Rows returns the number of rows. O(1).
func (d *Dense) Rows() int {
	if d == nil {
		return 0
	}

	return d.r
}

// Cols returns the number of columns. O(1).
func (d *Dense) Cols() int {
	if d == nil {
		return 0
	}

	return d.c
}

// indexOf validates (i,j) and returns the flat offset.
func (d *Dense) indexOf(method string, i, j int) (int, error) {
	if d == nil {
		return 0, ErrNilMatrix
	}
	if i < 0 || i >= d.r || j < 0 || j >= d.c {
		return 0, denseErrorf(method, i, j, ErrOutOfRange)
	}

	return i*d.c + j, nil
}

// At returns the element at (i, j).
// Errors: ErrNilMatrix, ErrOutOfRange (wrapped with coordinates).
func (d *Dense) At(i, j int) (float64, error) {
	off, err := d.indexOf(ctxAt, i, j)
	if err != nil {
		return 0, err
	}

	return d.data[off], nil
}

// Set assigns v at (i, j). Non-finite values are rejected with ErrNaNInf.
func (d *Dense) Set(i, j int, v float64) error {
	off, err := d.indexOf(ctxSet, i, j)
	if err != nil {
		return err
	}
	if err = ValidateFinite(v); err != nil {
		return denseErrorf(ctxSet, i, j, err)
	}
	d.data[off] = v

	return nil
}

// Row returns a copy of row i.
func (d *Dense) Row(i int) ([]float64, error) {
	if d == nil {
		return nil, ErrNilMatrix
	}
	if i < 0 || i >= d.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, d.c)
	copy(out, d.data[i*d.c:(i+1)*d.c])

	return out, nil
}

// swapRows exchanges rows i and j in place; callers check the bounds.
func (d *Dense) swapRows(i, j int) {
	ri := d.data[i*d.c : (i+1)*d.c]
	rj := d.data[j*d.c : (j+1)*d.c]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// Clone returns a deep copy; the result shares no storage with d.
// Complexity: O(r*c).
func (d *Dense) Clone() *Dense {
	if d == nil {
		return nil
	}
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return &Dense{r: d.r, c: d.c, data: buf}
}

// Equal reports whether a and b have the same shape and every pair of
// entries differs by at most tol.
func Equal(a, b *Dense, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	for k := range a.data {
		if math.Abs(a.data[k]-b.data[k]) > tol {
			return false
		}
	}

	return true
}

// String renders the matrix one bracketed row per line.
func (d *Dense) String() string {
	if d == nil {
		return "<nil>"
	}
	var sb strings.Builder
	var i, j int
	for i = 0; i < d.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < d.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", d.data[i*d.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
