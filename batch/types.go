package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/joltage/indicator"
	"github.com/katalvlaran/joltage/solver"
)

// ErrInvalidConfig is returned by Run for a negative worker count or an unknown mode.
var ErrInvalidConfig = errors.New("batch: invalid config")

// Mode selects which question is asked of every machine.
type Mode int

const (
	// ModeJoltage drives the counters to their targets (solver package).
	ModeJoltage Mode = iota

	// ModeIndicator reaches the light pattern (indicator package).
	ModeIndicator
)

// String returns "joltage", "indicator" or "unknown".
func (m Mode) String() string {
	switch m {
	case ModeJoltage:
		return "joltage"
	case ModeIndicator:
		return "indicator"
	default:
		return "unknown"
	}
}

// ParseMode is the inverse of Mode.String; "" yields ModeJoltage.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "joltage":
		return ModeJoltage, nil
	case "indicator", "lights":
		return ModeIndicator, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// MachineError reports the machine that aborted a batch.
type MachineError struct {
	Index int   // position of the machine in the input batch (0-based)
	Err   error // underlying cause
}

func (e *MachineError) Error() string {
	if e.Infeasible() {
		return fmt.Sprintf("no feasible solution for machine %d", e.Index)
	}

	return fmt.Sprintf("machine %d: %v", e.Index, e.Err)
}

func (e *MachineError) Unwrap() error { return e.Err }

// Infeasible reports whether the machine has no solution at all, as opposed
// to bad data, an exhausted budget or cancellation.
func (e *MachineError) Infeasible() bool {
	return errors.Is(e.Err, solver.ErrInfeasible) || errors.Is(e.Err, indicator.ErrUnreachable)
}

// Config configures Run.
//
// Mode      – joltage or indicator question.
// Workers   – concurrent machines (0 = runtime.GOMAXPROCS(0)).
// Solver    – options for every joltage search.
// Logger    – nil means slog.Default().
// Metrics   – nil disables Prometheus recording.
// Tracer    – nil means the global otel tracer provider.
type Config struct {
	Mode    Mode
	Workers int
	Solver  solver.Options
	Logger  *slog.Logger
	Metrics *Metrics
	Tracer  trace.Tracer
}

// DefaultConfig returns ModeJoltage, automatic workers and solver.DefaultOptions.
func DefaultConfig() Config {
	return Config{Mode: ModeJoltage, Solver: solver.DefaultOptions()}
}

// Option mutates Config.
type Option func(*Config)

// WithMode selects the question asked of every machine.
func WithMode(m Mode) Option { return func(c *Config) { c.Mode = m } }

// WithWorkers bounds the number of machines solved at once.
func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

// WithSolverOptions sets the options of every joltage search.
func WithSolverOptions(o solver.Options) Option { return func(c *Config) { c.Solver = o } }

// WithLogger sets the run logger.
func WithLogger(l *slog.Logger) Option { return func(c *Config) { c.Logger = l } }

// WithMetrics enables Prometheus recording.
func WithMetrics(m *Metrics) Option { return func(c *Config) { c.Metrics = m } }

// WithTracer sets the tracer for run and machine spans.
func WithTracer(t trace.Tracer) Option { return func(c *Config) { c.Tracer = t } }

// MachineResult is the outcome of one machine.
type MachineResult struct {
	Index int

	// Total is the minimum number of presses.
	Total int

	// Presses holds the press count per button; in ModeIndicator each entry is 0 or 1.
	Presses []int

	// Search statistics (ModeIndicator reports discovered masks as Nodes).
	FreeVariables int
	Nodes         int
	OracleCalls   int

	Elapsed time.Duration
}

// Report is the outcome of a whole batch.
type Report struct {
	RunID   string
	Mode    Mode
	Total   int
	Results []MachineResult
	Elapsed time.Duration
}
