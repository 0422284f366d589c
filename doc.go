// Package joltage finds the fewest button presses that configure a batch of
// machines.
//
// A machine has counters with non-negative integer targets and buttons; each
// press of a button adds one to a fixed set of counters. Per machine the
// question is the smallest total number of presses that lands every counter
// exactly on its target, which is the integer program
//
//	min Σx  subject to  A·x = b,  x ≥ 0 integer
//
// over a 0/1 matrix A. The answer for a batch is the sum over its machines.
//
// Layout (leaf-first):
//
//	matrix/    - dense float64 matrix, Gauss–Jordan reduction with partial pivoting
//	machine/   - Machine model, validation, text and JSON parsers
//	solver/    - elimination, validity oracle, branch-and-bound search, Solve
//	indicator/ - light-pattern variant (XOR breadth-first search)
//	batch/     - concurrent orchestration, logging, tracing, metrics
//	telemetry/ - metrics registry and span exporter for the commands
//	config/    - YAML + JOLTAGE_* environment configuration
//	logging/   - slog logger construction
//	cmd/       - joltage CLI and joltage-lambda function
//
// Quick start:
//
//	machines, _ := machine.ParseAll(os.Stdin)
//	total, err := batch.SolveAll(ctx, machines)
package joltage
