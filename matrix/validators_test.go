// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/matrix"
)

func TestValidateTolerance(t *testing.T) {
	t.Parallel()

	for _, eps := range []float64{0, 1e-12, matrix.DefaultTolerance} {
		require.NoError(t, matrix.ValidateTolerance(eps))
	}
	for _, eps := range []float64{-1e-9, math.NaN(), math.Inf(1)} {
		require.ErrorIs(t, matrix.ValidateTolerance(eps), matrix.ErrBadTolerance)
	}
}

func TestValidateVecLenAndFinite(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateVecLen(nil, 0))
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateFinite(math.Inf(-1)), matrix.ErrNaNInf)
	require.NoError(t, matrix.ValidateFinite(-3))
}

// TestIsZeroNearInteger pins both boundaries: IsZero is strict, NearInteger inclusive.
func TestIsZeroNearInteger(t *testing.T) {
	t.Parallel()

	eps := matrix.DefaultTolerance
	require.True(t, matrix.IsZero(eps/2, eps))
	require.False(t, matrix.IsZero(eps, eps))
	require.False(t, matrix.IsZero(-2*eps, eps))

	k, ok := matrix.NearInteger(3+eps/2, eps)
	require.True(t, ok)
	require.Equal(t, 3.0, k)

	_, ok = matrix.NearInteger(0.5, eps)
	require.False(t, ok)

	k, ok = matrix.NearInteger(-eps, eps)
	require.True(t, ok)
	require.Zero(t, k)

	_, ok = matrix.NearInteger(-1.0001e-9, eps)
	require.False(t, ok)
}
