package solver

import "github.com/katalvlaran/joltage/matrix"

// Evaluate is the validity oracle. Given values for the free variables (in
// Independents order) it back-substitutes every dependent variable,
//
//	x_dep(i) = rhs_i − Σ_j coef(i, Independents[j]) · free[j],
//
// and accepts only if each lies within eps of a non-negative integer. On
// success it returns the total press count: Σ free + Σ round(x_dep).
//
// A wrong-length or negative free vector is rejected, as is an inconsistent
// reduction. eps must be the tolerance used by the elimination.
func (r Reduction) Evaluate(free []int, eps float64) (int, bool) {
	return r.evaluate(free, eps, nil)
}

// EvaluatePresses is Evaluate that also materialises the full press vector,
// indexed by button.
func (r Reduction) EvaluatePresses(free []int, eps float64) ([]int, int, bool) {
	presses := make([]int, r.Buttons())
	total, ok := r.evaluate(free, eps, presses)
	if !ok {
		return nil, 0, false
	}

	return presses, total, true
}

// evaluate backs both oracle entry points; presses may be nil.
func (r Reduction) evaluate(free []int, eps float64, presses []int) (int, bool) {
	nf := len(r.Independents)
	if !r.Consistent || len(free) != nf {
		return 0, false
	}
	total := 0
	for j, v := range free {
		if v < 0 {
			return 0, false
		}
		total += v
		if presses != nil {
			presses[r.Independents[j]] = v
		}
	}

	var (
		i, j   int
		val, k float64
		ok     bool
	)
	for i = range r.Dependents {
		val = r.rhs[i]
		for j = 0; j < nf; j++ {
			if free[j] != 0 {
				val -= r.coef[i*nf+j] * float64(free[j])
			}
		}
		// Whole, non-negative presses only.
		if val < -eps {
			return 0, false
		}
		if k, ok = matrix.NearInteger(val, eps); !ok {
			return 0, false
		}
		total += int(k)
		if presses != nil {
			presses[r.Dependents[i]] = int(k)
		}
	}

	return total, true
}
