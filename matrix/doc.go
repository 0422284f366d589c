// Package matrix offers the dense linear-algebra layer of joltage.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set/Row,
//     Clone and a legal 0×k shape for systems without equations.
//   - GaussJordan: in-place reduction to reduced row-echelon form with partial
//     pivoting, reporting pivot (dependent) and free columns.
//   - InconsistentRow: detection of 0 = b rows left over after reduction.
//   - MatVec: y = A·x, used to re-substitute solutions into the original system.
//
// All kernels are deterministic and never panic on user input; failures are
// reported through the sentinels in errors.go. A single tolerance constant,
// DefaultTolerance, governs every "numerically zero" decision.
package matrix
