// Package matrix_test contains unit tests for the Dense storage and accessors.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/matrix"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects negative dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(-1, 2) // negative is never legal
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(3, -4)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestNewDenseEmptyShapes allows empty shapes (systems without equations).
func TestNewDenseEmptyShapes(t *testing.T) {
	m, err := matrix.NewDense(0, 4)
	require.NoError(t, err)
	require.Equal(t, 0, m.Rows())
	require.Equal(t, 4, m.Cols())
	require.Equal(t, "", m.String())

	m, err = matrix.NewDense(2, 0)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, "[]\n[]\n", m.String())
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(2, 0, 1.23)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(0, 0, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	var nilM *matrix.Dense
	_, err = nilM.At(0, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	require.Equal(t, 0, nilM.Rows())
}

// TestSetGet validates Set() followed by At() on valid indices.
func TestSetGet(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7.89))
	val, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.89, val)
}

// TestNewDenseFromRows copies input and rejects ragged or non-finite rows.
func TestNewDenseFromRows(t *testing.T) {
	src := [][]float64{{1, 2}, {3, 4}}
	m, err := matrix.NewDenseFromRows(src)
	require.NoError(t, err)
	src[0][0] = 99 // the matrix owns its storage
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())

	_, err = matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFromRows([][]float64{{math.Inf(1)}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestRowClone covers row copies and deep cloning.
func TestRowClone(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, row)
	row[0] = 42 // copy, not a view
	v, _ := m.At(1, 0)
	require.Equal(t, 3.0, v)

	_, err = m.Row(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	c := m.Clone()
	require.True(t, matrix.Equal(m, c, 0))
	require.NoError(t, m.Set(2, 1, 9))
	require.False(t, matrix.Equal(m, c, 0))
	require.Equal(t, "[1, 2]\n[3, 4]\n[5, 6]\n", c.String())
	require.Equal(t, "[1, 2]\n[3, 4]\n[5, 9]\n", m.String())
}

// TestEqual compares shapes and tolerances.
func TestEqual(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}})
	b := mustRows(t, [][]float64{{1, 2 + 1e-12}})
	require.True(t, matrix.Equal(a, b, 1e-9))
	require.False(t, matrix.Equal(a, b, 0))
	require.False(t, matrix.Equal(a, mustRows(t, [][]float64{{1}, {2}}), 1))
	require.True(t, matrix.Equal(nil, nil, 0))
	require.False(t, matrix.Equal(a, nil, 0))
}

// mustRows builds a Dense from literal rows or fails the test.
func mustRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}
