package batch

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/joltage/indicator"
	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/solver"
)

// Namespace and subsystem for all batch metrics.
const (
	metricsNamespace = "joltage"
	metricsSubsystem = "batch"
)

// Outcome label values of MachinesTotal and RunsTotal, as returned by Outcome.
const (
	OutcomeOK         = "ok"
	OutcomeInfeasible = "infeasible"
	OutcomeBudget     = "budget"
	OutcomeInvalid    = "invalid"
	OutcomeCanceled   = "canceled"
)

// Metrics holds the Prometheus collectors of the batch orchestrator.
// All operations are safe for concurrent use.
type Metrics struct {
	// MachinesTotal counts finished machines.
	// Labels: mode (joltage, indicator), outcome (ok, infeasible, budget, invalid, canceled)
	MachinesTotal *prometheus.CounterVec

	// RunsTotal counts finished batches.
	// Labels: mode, outcome (ok or the outcome of the aborting machine)
	RunsTotal *prometheus.CounterVec

	// SolveSeconds measures per-machine wall time.
	// Labels: mode
	SolveSeconds *prometheus.HistogramVec

	// SearchNodes observes visited search nodes per joltage machine.
	SearchNodes prometheus.Histogram

	// FreeVariables observes the free variable count per joltage machine.
	FreeVariables prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		MachinesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "machines_total",
			Help:      "Machines solved by mode and outcome",
		}, []string{"mode", "outcome"}),
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "runs_total",
			Help:      "Batches finished by mode and outcome",
		}, []string{"mode", "outcome"}),
		SolveSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "solve_seconds",
			Help:      "Per-machine solve time in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"mode"}),
		SearchNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "search_nodes",
			Help:      "Branch-and-bound nodes visited per machine",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		FreeVariables: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "free_variables",
			Help:      "Free variables left by elimination per machine",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
	}
}

// Outcome classifies a machine or batch error:
//
//   - OutcomeOK for nil.
//   - OutcomeInfeasible when the machine has no solution.
//   - OutcomeBudget when the search gave up (MaxNodes, TimeLimit).
//   - OutcomeInvalid for bad input: a malformed machine, too many lights or
//     an invalid batch configuration.
//   - OutcomeCanceled otherwise (context cancellation or deadline).
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, solver.ErrInfeasible), errors.Is(err, indicator.ErrUnreachable):
		return OutcomeInfeasible
	case errors.Is(err, solver.ErrBudgetExceeded):
		return OutcomeBudget
	case errors.Is(err, machine.ErrMalformedMachine),
		errors.Is(err, indicator.ErrTooManyLights),
		errors.Is(err, ErrInvalidConfig):
		return OutcomeInvalid
	default:
		return OutcomeCanceled
	}
}

// observeMachine records one finished machine; m may be nil.
func (m *Metrics) observeMachine(mode Mode, res MachineResult, err error) {
	if m == nil {
		return
	}
	m.MachinesTotal.WithLabelValues(mode.String(), Outcome(err)).Inc()
	m.SolveSeconds.WithLabelValues(mode.String()).Observe(res.Elapsed.Seconds())
	if err == nil && mode == ModeJoltage {
		m.SearchNodes.Observe(float64(res.Nodes))
		m.FreeVariables.Observe(float64(res.FreeVariables))
	}
}

// observeRun records one finished batch; m may be nil.
func (m *Metrics) observeRun(mode Mode, err error) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(mode.String(), Outcome(err)).Inc()
}
