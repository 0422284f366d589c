// SPDX-License-Identifier: MIT
// Package matrix - numeric policy defaults.
//
// Purpose:
//   - Hold the single source of truth for tolerances used by the kernels.
//   - Keep every "is this zero / is this an integer" decision on one named constant
//     so elimination and any downstream back-substitution classify values the same way.

package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the absolute threshold below which a value is treated
	// as exactly zero (pivot selection, elimination skipping) and within which a
	// value is treated as an integer by callers doing back-substitution.
	// Entries of the systems handled here are small integers, so an absolute
	// (not relative) threshold is adequate.
	DefaultTolerance = 1e-9
)
