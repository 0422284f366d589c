// Package matrix_test contains unit tests for MatVec.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/matrix"
)

func TestMatVec(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2}, {3, 4}, {0, -1}})
	y, err := matrix.MatVec(m, []float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 7, -1}, y)

	_, err = matrix.MatVec(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.MatVec(nil, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMatVec_AugmentedResidual re-substitutes a solution of [A | b] with a
// trailing zero so the right-hand side column is ignored.
func TestMatVec_AugmentedResidual(t *testing.T) {
	aug := mustRows(t, [][]float64{{1, 1, 0, 3}, {0, 1, 1, 5}})
	y, err := matrix.MatVec(aug, []float64{1, 2, 3, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 5}, y)
}
