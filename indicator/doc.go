// Package indicator solves the light-pattern variant of a machine: every
// button toggles the lights it lists, all lights start off, and the goal is
// the fewest presses that produce the machine's Lights pattern.
//
// What
//
//   - Lights and buttons are encoded as uint64 bitmasks (bit i = light i), so
//     a press is an XOR and pressing a button twice is a no-op.
//   - A breadth-first search from the all-off mask over "press one more
//     button" edges reaches every mask in the fewest presses.
//   - Result carries the press count, the buttons pressed (ascending BFS
//     order) and the number of distinct masks discovered.
//
// Determinism
//
//	Buttons are expanded in index order, so among equally short answers the
//	one discovered first is returned on every run.
//
// Complexity (B = buttons, S = reachable masks ≤ 2^min(B, lights))
//
//   - Time:   O(S·B)
//   - Memory: O(S)
//
// Errors
//
//   - ErrTooManyLights: more than 64 lights.
//   - ErrUnreachable: no combination of buttons produces the pattern.
//   - machine.ErrMalformedMachine (wrapped) from validation.
package indicator
