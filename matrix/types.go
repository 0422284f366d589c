// SPDX-License-Identifier: MIT

// Package matrix: result types shared by the elimination kernels.
// Storage lives in impl_dense.go; kernels in impl_linear_algebra.go and
// impl_gauss_jordan.go.
package matrix

// Echelon describes the outcome of a Gauss–Jordan reduction.
//
// Pivots[i] is the column whose leading 1 sits in row i of the reduced matrix,
// so len(Pivots) is the numerical rank. Free lists every non-pivot variable
// column in the order the scan discovered it: columns skipped because no
// usable pivot remained, then every column left over once the row cursor ran
// out. Pivots and Free partition the variable columns exactly once each.
type Echelon struct {
	Pivots []int // pivot column per reduced row, in pivot order
	Free   []int // free variable columns, in discovery order
}

// Rank returns the number of pivots found.
func (e Echelon) Rank() int { return len(e.Pivots) }
