package solver

import (
	"errors"
	"math"
	"time"

	"github.com/katalvlaran/joltage/matrix"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	// ErrInfeasible is returned when no assignment of the explored space
	// yields an all non-negative, all integer press vector, including the
	// case of an inconsistent system (a reduced row reading 0 = b, b != 0).
	ErrInfeasible = errors.New("solver: no feasible solution")

	// ErrBudgetExceeded is returned when the search hits Options.MaxNodes or
	// Options.TimeLimit before finishing.
	ErrBudgetExceeded = errors.New("solver: search budget exceeded")

	// ErrInvalidOptions is returned for a negative tolerance, node cap or
	// time limit, or an unknown bound policy.
	ErrInvalidOptions = errors.New("solver: invalid options")
)

// infeasible is the initial incumbent: larger than any attainable total.
const infeasible = math.MaxInt

// deadlineMask makes the engine look at the clock and the context once every
// 4096 nodes.
const deadlineMask = 4095

// BoundPolicy selects the per-free-variable upper bound of the search.
type BoundPolicy int

const (
	// GlobalBound lets every free variable range over 0..max(targets).
	GlobalBound BoundPolicy = iota

	// PerButtonBound caps a free button at the smallest target among the
	// counters it increments (pressing it more would overshoot that
	// counter); a button that touches no counter is pinned to 0.
	PerButtonBound
)

// String returns the policy name used in configs and flags.
func (b BoundPolicy) String() string {
	switch b {
	case GlobalBound:
		return "global"
	case PerButtonBound:
		return "per-button"
	default:
		return "unknown"
	}
}

// ParseBoundPolicy is the inverse of BoundPolicy.String.
func ParseBoundPolicy(s string) (BoundPolicy, error) {
	switch s {
	case "global", "":
		return GlobalBound, nil
	case "per-button":
		return PerButtonBound, nil
	default:
		return 0, ErrInvalidOptions
	}
}

// Options configures Solve and Search.
//
// Eps        – tolerance for "zero" during elimination and "integer" in the oracle.
// Bound      – per-free-variable upper bound policy.
// MaxNodes   – cap on visited search nodes (0 = unlimited).
// TimeLimit  – wall-clock cap on one search (0 = none).
// OnIncumbent – optional hook called with every strictly better total, in order.
type Options struct {
	Eps         float64
	Bound       BoundPolicy
	MaxNodes    int
	TimeLimit   time.Duration
	OnIncumbent func(total int)
}

// Option mutates Options.
type Option func(*Options)

// WithEps sets the numeric tolerance.
func WithEps(eps float64) Option { return func(o *Options) { o.Eps = eps } }

// WithBound selects the upper bound policy.
func WithBound(b BoundPolicy) Option { return func(o *Options) { o.Bound = b } }

// WithMaxNodes caps the number of search nodes (0 = unlimited).
func WithMaxNodes(n int) Option { return func(o *Options) { o.MaxNodes = n } }

// WithTimeLimit caps the wall-clock time of one search (0 = none).
func WithTimeLimit(d time.Duration) Option { return func(o *Options) { o.TimeLimit = d } }

// WithOnIncumbent installs a hook observing every improvement of the best total.
func WithOnIncumbent(fn func(total int)) Option { return func(o *Options) { o.OnIncumbent = fn } }

// DefaultOptions returns the defaults:
//   - Eps:       matrix.DefaultTolerance (1e-9).
//   - Bound:     GlobalBound.
//   - MaxNodes:  0 (unlimited).
//   - TimeLimit: 0 (none).
func DefaultOptions() Options {
	return Options{Eps: matrix.DefaultTolerance, Bound: GlobalBound}
}

// NewOptions applies fns on top of DefaultOptions.
func NewOptions(fns ...Option) Options {
	o := DefaultOptions()
	for _, fn := range fns {
		fn(&o)
	}

	return o
}

// Validate checks option ranges; errors are ErrInvalidOptions.
func (o Options) Validate() error {
	if matrix.ValidateTolerance(o.Eps) != nil || o.MaxNodes < 0 || o.TimeLimit < 0 {
		return ErrInvalidOptions
	}
	if o.Bound != GlobalBound && o.Bound != PerButtonBound {
		return ErrInvalidOptions
	}

	return nil
}

// Result is the outcome of one machine's search.
type Result struct {
	// Total is the minimum number of presses.
	Total int

	// Presses is the incumbent press count per button (free and dependent).
	// Among equal totals it is the first found in ascending enumeration order.
	Presses []int

	// FreeVariables is the number of free (independent) buttons searched over.
	FreeVariables int

	// Nodes counts visited search nodes; OracleCalls counts leaf evaluations.
	Nodes       int
	OracleCalls int
}
