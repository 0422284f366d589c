// SPDX-License-Identifier: MIT

// Package matrix - Gauss–Jordan reduction with partial pivoting.
//
// Purpose:
//   - Reduce a (possibly augmented, possibly rank-deficient) matrix to reduced
//     row-echelon form in place and report which variable columns carry a pivot.
//
// Algorithm:
//   - Row cursor p starts at 0; columns are scanned left to right.
//   - For column c pick the row in [p, rows) with the largest |a[r][c]| (first row on ties).
//   - If that magnitude is below eps the column is free: advance c only.
//   - Otherwise swap it into row p, divide row p by the pivot (a[p][c] becomes exactly 1),
//     subtract multiples of row p from every other row (above and below), set the
//     eliminated entries to exactly 0, then advance both p and c.
//   - When p reaches rows, all remaining variable columns are free.
//
// Determinism:
//   - Fixed scan order and tie-break; identical input yields bit-identical output.
//
// Complexity:
//   - Time O(rows·cols²) worst case, Space O(1) beyond the result slices.

package matrix

// GaussJordan reduces d to reduced row-echelon form in place.
//
// When augmented is true, the last column is a right-hand side: it is carried
// through every row operation but never considered as a pivot column, so the
// variable columns are [0, Cols()-1). Otherwise every column is a variable.
//
// Near-singular columns (best magnitude < eps) are classified free instead of
// failing; the only errors are argument errors.
//
// Errors:
//   - ErrNilMatrix, ErrBadTolerance, ErrDimensionMismatch (augmented with zero columns).
func GaussJordan(d *Dense, augmented bool, eps float64) (Echelon, error) {
	if err := ValidateNotNil(d); err != nil {
		return Echelon{}, matrixErrorf(opGaussJordan, err)
	}
	if err := ValidateTolerance(eps); err != nil {
		return Echelon{}, matrixErrorf(opGaussJordan, err)
	}
	vars := d.c
	if augmented {
		if d.c < 1 {
			return Echelon{}, matrixErrorf(opGaussJordan, ErrDimensionMismatch)
		}
		vars = d.c - 1
	}

	var (
		out          = Echelon{Pivots: make([]int, 0, min(d.r, vars)), Free: make([]int, 0, vars)}
		pivot, col   int
		r, k         int
		best         int
		bestAbs, abs float64
		pv, f        float64
		prow, row    []float64
	)
	for pivot < d.r && col < vars {
		// Stage 1: partial pivot selection over the remaining rows.
		best, bestAbs = pivot, absf(d.data[pivot*d.c+col])
		for r = pivot + 1; r < d.r; r++ {
			if abs = absf(d.data[r*d.c+col]); abs > bestAbs {
				best, bestAbs = r, abs
			}
		}
		if bestAbs < eps {
			out.Free = append(out.Free, col)
			col++
			continue
		}

		// Stage 2: bring the pivot row up and normalize it.
		if best != pivot {
			d.swapRows(pivot, best)
		}
		out.Pivots = append(out.Pivots, col)
		prow = d.data[pivot*d.c : (pivot+1)*d.c]
		pv = prow[col]
		for k = col; k < d.c; k++ {
			prow[k] /= pv
		}
		prow[col] = 1

		// Stage 3: clear the pivot column in every other row.
		for r = 0; r < d.r; r++ {
			if r == pivot {
				continue
			}
			row = d.data[r*d.c : (r+1)*d.c]
			if f = row[col]; f == 0 {
				continue
			}
			for k = col; k < d.c; k++ {
				row[k] -= f * prow[k]
			}
			row[col] = 0
		}

		pivot++
		col++
	}
	// Row cursor exhausted: every remaining variable column is free.
	for ; col < vars; col++ {
		out.Free = append(out.Free, col)
	}

	return out, nil
}

// InconsistentRow reports the first reduced row without a pivot whose
// right-hand side is not numerically zero. Such a row reads 0 = b with b != 0,
// so the augmented system has no solution at all.
//
// d must be the augmented matrix already reduced by GaussJordan and e its result.
// Returns (-1, false) when the system is consistent.
func InconsistentRow(d *Dense, e Echelon, eps float64) (int, bool, error) {
	if err := ValidateNotNil(d); err != nil {
		return -1, false, matrixErrorf(opConsistent, err)
	}
	if d.c < 1 || e.Rank() > d.r {
		return -1, false, matrixErrorf(opConsistent, ErrDimensionMismatch)
	}
	last := d.c - 1
	for r := e.Rank(); r < d.r; r++ {
		if !IsZero(d.data[r*d.c+last], eps) {
			return r, true, nil
		}
	}

	return -1, false, nil
}

// absf is a branch-only |x| for the pivot scan hot loop.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
