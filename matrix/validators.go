// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape/tolerance checks here.
//  - Return plain sentinel errors (tagged) so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if d == nil. O(1).
func ValidateNotNil(d *Dense) error {
	if d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateVecLen ensures len(x) == n. A nil slice is accepted only when n == 0.
// O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf(fmt.Sprintf("ValidateVecLen(%d!=%d)", len(x), n), ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf.
func ValidateFinite(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNaNInf
	}

	return nil
}

// ValidateTolerance accepts finite, non-negative tolerances only.
// AI-Hints: a zero tolerance is legal and means "exact comparisons".
func ValidateTolerance(eps float64) error {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return validatorErrorf("ValidateTolerance", ErrBadTolerance)
	}

	return nil
}

// IsZero reports |v| < eps, the package's single definition of "numerically zero".
func IsZero(v, eps float64) bool { return math.Abs(v) < eps }

// NearInteger reports whether v lies within eps of the nearest integer and
// returns that integer (as float64).
func NearInteger(v, eps float64) (float64, bool) {
	r := math.Round(v)

	return r, math.Abs(v-r) <= eps
}
