package solver

import (
	"fmt"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/matrix"
)

// Reduction is the read-only outcome of eliminating one machine's system.
//
// Row i of Matrix holds the pivot of button Dependents[i]; Independents are
// the free buttons in discovery order. Together they partition the button
// indices exactly once. Nothing mutates a Reduction after it is built, so it
// may be shared by concurrent readers.
type Reduction struct {
	Matrix       *matrix.Dense // reduced augmented matrix [R | b']
	Dependents   []int         // pivot columns, in pivot (= row) order
	Independents []int         // free columns, in discovery order
	Consistent   bool          // false if a non-pivot row reads 0 = b, b != 0

	// Dense copies of the coefficients the oracle needs:
	// coef[i*len(Independents)+j] = Matrix[i][Independents[j]], rhs[i] = Matrix[i][last].
	coef []float64
	rhs  []float64

	// caps[c] is the PerButtonBound cap of button c (nil when unknown).
	caps []int
}

// Buttons returns the number of variables (buttons) of the system.
func (r Reduction) Buttons() int { return len(r.Dependents) + len(r.Independents) }

// BuildSystem builds the augmented matrix of m: one row per counter, one
// column per button plus a trailing right-hand side column. Entry (r, c) is 1
// when button c increments counter r; the last column holds the targets.
//
// m is validated first; errors wrap machine.ErrMalformedMachine.
func BuildSystem(m machine.Machine) (*matrix.Dense, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	rows, cols := len(m.Targets), len(m.Buttons)
	d, err := matrix.NewDense(rows, cols+1)
	if err != nil {
		return nil, err
	}
	for c, button := range m.Buttons {
		for _, r := range button {
			if err = d.Set(r, c, 1); err != nil {
				return nil, err
			}
		}
	}
	for r, t := range m.Targets {
		if err = d.Set(r, cols, float64(t)); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Reduce runs Gauss–Jordan elimination with partial pivoting on the
// augmented matrix aug (mutated in place) and packages the result.
// Near-singular columns become free variables; Reduce itself never reports
// infeasibility, it only records Consistent.
func Reduce(aug *matrix.Dense, eps float64) (Reduction, error) {
	ech, err := matrix.GaussJordan(aug, true, eps)
	if err != nil {
		return Reduction{}, fmt.Errorf("reduce: %w", err)
	}
	_, bad, err := matrix.InconsistentRow(aug, ech, eps)
	if err != nil {
		return Reduction{}, fmt.Errorf("reduce: %w", err)
	}

	red := Reduction{
		Matrix:       aug,
		Dependents:   ech.Pivots,
		Independents: ech.Free,
		Consistent:   !bad,
	}
	red.prefetch()

	return red, nil
}

// Eliminate builds and reduces the system of m and records the per-button
// caps used by PerButtonBound.
func Eliminate(m machine.Machine, eps float64) (Reduction, error) {
	aug, err := BuildSystem(m)
	if err != nil {
		return Reduction{}, err
	}
	red, err := Reduce(aug, eps)
	if err != nil {
		return Reduction{}, err
	}
	red.caps = buttonCaps(m)

	return red, nil
}

// prefetch copies the oracle's coefficients out of the matrix so the hot
// loop reads a flat slice instead of going through bounds-checked At.
func (r *Reduction) prefetch() {
	nd, nf := len(r.Dependents), len(r.Independents)
	last := r.Matrix.Cols() - 1
	r.coef = make([]float64, nd*nf)
	r.rhs = make([]float64, nd)
	var i, j int
	for i = 0; i < nd; i++ {
		row, _ := r.Matrix.Row(i) // i < rank <= Rows
		r.rhs[i] = row[last]
		for j = 0; j < nf; j++ {
			r.coef[i*nf+j] = row[r.Independents[j]]
		}
	}
}

// buttonCaps returns, per button, the smallest target among its counters
// (0 for a button without counters).
func buttonCaps(m machine.Machine) []int {
	caps := make([]int, len(m.Buttons))
	for c, button := range m.Buttons {
		if len(button) == 0 {
			continue
		}
		lo := m.Targets[button[0]]
		for _, r := range button[1:] {
			lo = min(lo, m.Targets[r])
		}
		caps[c] = lo
	}

	return caps
}
