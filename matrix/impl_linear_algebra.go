// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the solver:
// matrix-vector product and in-place Gauss–Jordan reduction.
//
// Purpose:
//   - Define operation tags and shared constants for determinism and error reporting.
//   - Host MatVec, used to re-substitute solutions into the original system.
//
// Notes:
//   - All kernels use central validators and return sentinels wrapped via matrixErrorf.

package matrix

import "fmt"

// ZeroSum is the initial accumulator value for dot-products.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMatVec      = "MatVec"
	opGaussJordan = "GaussJordan"
	opConsistent  = "Consistent"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m·x.
//
// Inputs:
//   - m: non-nil matrix (r×c).
//   - x: vector of length c.
//
// Returns:
//   - y of length r (fresh allocation).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "MatVec").
//
// Complexity:
//   - Time O(r*c), Space O(r).
//
// AI-Hints:
//   - To check an augmented system [A|b], pass x with a trailing 0 and compare
//     against the last column, or use Columns-1 views built by the caller.
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.r)
	var i, j, base int
	var acc, xv float64
	for i = 0; i < m.r; i++ {
		acc = ZeroSum
		base = i * m.c
		for j = 0; j < m.c; j++ {
			xv = x[j]
			if xv != 0 { // skip zero multiplications
				acc += m.data[base+j] * xv
			}
		}
		y[i] = acc
	}

	return y, nil
}
