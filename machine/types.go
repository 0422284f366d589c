// Package machine defines the puzzle instance consumed by the solvers: a set
// of buttons, each incrementing (or toggling) a fixed subset of counters, the
// target value of every counter and, optionally, an indicator-light pattern.
//
// Machines are immutable once built: solvers only read them, and Validate
// must succeed before any numeric work starts.
package machine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMalformedMachine is returned when a machine violates its structural
// invariants (button index out of range, negative target, mismatched lights).
// It is a data-validation failure, distinct from infeasibility.
var ErrMalformedMachine = errors.New("machine: malformed machine")

// ErrSyntax is returned by the parsers for input that does not follow the
// machine grammar.
var ErrSyntax = errors.New("machine: syntax error")

// Machine is one puzzle instance.
type Machine struct {
	// Lights is the desired indicator pattern (true = on). Optional; when
	// present its length equals len(Targets).
	Lights []bool

	// Buttons lists, per button, the counter indices it affects. A repeated
	// index counts once.
	Buttons [][]int

	// Targets holds the required final value of every counter.
	Targets []int
}

// Counters returns the number of counters (equations).
func (m Machine) Counters() int { return len(m.Targets) }

// MaxTarget returns the largest target, or 0 for a machine without counters.
func (m Machine) MaxTarget() int {
	best := 0
	for _, t := range m.Targets {
		if t > best {
			best = t
		}
	}

	return best
}

// Validate checks the structural invariants.
//
// Errors wrap ErrMalformedMachine and name the offending button or counter.
func (m Machine) Validate() error {
	for c, t := range m.Targets {
		if t < 0 {
			return fmt.Errorf("counter %d: negative target %d: %w", c, t, ErrMalformedMachine)
		}
	}
	n := len(m.Targets)
	for b, button := range m.Buttons {
		for _, c := range button {
			if c < 0 || c >= n {
				return fmt.Errorf("button %d: counter %d outside [0,%d): %w", b, c, n, ErrMalformedMachine)
			}
		}
	}
	if m.Lights != nil && len(m.Lights) != n {
		return fmt.Errorf("lights: %d lights for %d counters: %w", len(m.Lights), n, ErrMalformedMachine)
	}

	return nil
}

// String renders the machine in the text input format.
func (m Machine) String() string {
	var sb strings.Builder
	if m.Lights != nil {
		sb.WriteByte('[')
		for _, on := range m.Lights {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("] ")
	}
	for _, button := range m.Buttons {
		sb.WriteByte('(')
		writeInts(&sb, button)
		sb.WriteString(") ")
	}
	sb.WriteByte('{')
	writeInts(&sb, m.Targets)
	sb.WriteByte('}')

	return sb.String()
}

func writeInts(sb *strings.Builder, xs []int) {
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(sb, "%d", x)
	}
}

// uniqueCounters drops repeated counter indices, keeping first occurrences.
// A button is a set: listing a counter twice still adds one per press.
func uniqueCounters(button []int) []int {
	out := make([]int, 0, len(button))
	for _, c := range button {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	return out
}
