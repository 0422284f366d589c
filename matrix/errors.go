// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels (optionally wrapped with an op tag)
// and tests check them via errors.Is. No kernel panics on user input.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so it greps cleanly in logs.
// Context is attached with matrixErrorf/denseErrorf at the detection site;
// callers still match with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape -> index -> NaN/Inf -> tolerance.

var (
	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrInvalidDimensions indicates that requested dimensions are negative,
	// or non-positive for the strict public constructor.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// At/Set return this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes
	// (e.g., MatVec with len(x) != Cols, or row data of uneven length).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrBadTolerance signals a negative, NaN or infinite tolerance.
	ErrBadTolerance = errors.New("matrix: invalid tolerance")
)
