// Package solver finds the fewest button presses that drive a machine's
// counters exactly to their targets.
//
// Each button adds one to a fixed set of counters per press, so a machine is
// the integer system A·x = b, x ≥ 0, with one equation per counter and one
// variable per button, and the objective is min Σx. The pipeline is:
//
//   - BuildSystem: the augmented 0/1 matrix [A | b].
//   - Reduce / Eliminate: Gauss–Jordan with partial pivoting (package matrix)
//     splitting the buttons into dependent (pivot) and free variables.
//   - Reduction.Evaluate: the validity oracle; back-substitutes the dependents
//     for a given free assignment and accepts only whole, non-negative presses.
//   - Search: depth-first branch-and-bound over the free variables.
//   - Solve: all of the above for one machine.
//
// Systems are small (tens of buttons), so float64 with the fixed tolerance
// matrix.DefaultTolerance is used instead of exact rationals. The same
// tolerance must drive elimination and the oracle.
//
// Quick example:
//
//	m, _ := machine.Parse("[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}")
//	res, err := solver.Solve(ctx, m, solver.DefaultOptions())
//	// res.Total == 10
package solver
