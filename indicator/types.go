package indicator

import "errors"

// Sentinel errors for the indicator search.
var (
	// ErrTooManyLights is returned when a pattern does not fit in 64 bits.
	ErrTooManyLights = errors.New("indicator: more than 64 lights")

	// ErrUnreachable is returned when the pattern is outside the span of the buttons.
	ErrUnreachable = errors.New("indicator: light pattern unreachable")
)

// MaxLights is the widest pattern a mask can hold.
const MaxLights = 64

// cancelCheckMask makes the walker poll its context every 1024 dequeues.
const cancelCheckMask = 1023

// Result is the outcome of one indicator search.
type Result struct {
	// Presses is the fewest button presses producing the pattern.
	Presses int

	// Buttons lists the pressed button indices, ascending.
	Buttons []int

	// States counts the distinct masks discovered by the search.
	States int
}
