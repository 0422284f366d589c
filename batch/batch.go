package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/joltage/indicator"
	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/solver"
)

// tracerName is the instrumentation scope of the default tracer.
const tracerName = "github.com/katalvlaran/joltage/batch"

// withDefaults fills the nil/zero fields of c.
func (c Config) withDefaults() Config {
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(tracerName)
	}

	return c
}

// validate rejects configurations Run cannot honour.
func (c Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if c.Mode != ModeJoltage && c.Mode != ModeIndicator {
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, c.Mode)
	}
	if c.Mode == ModeJoltage {
		if err := c.Solver.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

// Run solves every machine and sums the minima.
//
// The Report always carries RunID and Elapsed; Total and Results are only
// meaningful when err is nil.
//
// Errors:
//   - ErrInvalidConfig before any machine is started.
//   - *MachineError for the first machine that failed (infeasible, malformed,
//     budget exceeded); the remaining machines are cancelled.
//   - ctx.Err() when the caller cancels before a machine fails.
func Run(ctx context.Context, machines []machine.Machine, cfg Config) (Report, error) {
	cfg = cfg.withDefaults()
	rep := Report{RunID: uuid.NewString(), Mode: cfg.Mode}
	if err := cfg.validate(); err != nil {
		return rep, err
	}

	start := time.Now()
	log := cfg.Logger.With("run_id", rep.RunID, "mode", cfg.Mode.String())
	ctx, span := cfg.Tracer.Start(ctx, "batch.Run", trace.WithAttributes(
		attribute.String("joltage.run_id", rep.RunID),
		attribute.String("joltage.mode", cfg.Mode.String()),
		attribute.Int("joltage.machines", len(machines)),
		attribute.Int("joltage.workers", cfg.Workers),
	))
	defer span.End()
	log.Info("batch started", "machines", len(machines), "workers", cfg.Workers)

	results := make([]MachineResult, len(machines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range machines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := solveOne(gctx, cfg, i, machines[i])
			cfg.Metrics.observeMachine(cfg.Mode, res, err)
			if err != nil {
				return &MachineError{Index: i, Err: err}
			}
			log.Debug("machine solved",
				"machine", i,
				"total", res.Total,
				"free", res.FreeVariables,
				"nodes", res.Nodes,
				"elapsed", res.Elapsed,
			)
			results[i] = res

			return nil
		})
	}
	err := g.Wait()
	rep.Elapsed = time.Since(start)
	cfg.Metrics.observeRun(cfg.Mode, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("batch failed", "error", err, "elapsed", rep.Elapsed)
		return rep, err
	}

	for _, r := range results {
		rep.Total += r.Total
	}
	rep.Results = results
	span.SetAttributes(attribute.Int("joltage.total", rep.Total))
	log.Info("batch finished", "total", rep.Total, "elapsed", rep.Elapsed)

	return rep, nil
}

// SolveAll is Run with functional options, returning only the sum.
func SolveAll(ctx context.Context, machines []machine.Machine, opts ...Option) (int, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	rep, err := Run(ctx, machines, cfg)
	if err != nil {
		return 0, err
	}

	return rep.Total, nil
}

// solveOne answers cfg.Mode for machine i inside its own span.
func solveOne(ctx context.Context, cfg Config, i int, m machine.Machine) (MachineResult, error) {
	ctx, span := cfg.Tracer.Start(ctx, "batch.Machine", trace.WithAttributes(
		attribute.Int("joltage.machine", i),
		attribute.Int("joltage.buttons", len(m.Buttons)),
		attribute.Int("joltage.counters", len(m.Targets)),
	))
	defer span.End()

	start := time.Now()
	out := MachineResult{Index: i}
	var err error
	switch cfg.Mode {
	case ModeIndicator:
		var res indicator.Result
		res, err = indicator.Solve(ctx, m)
		out.Total, out.Nodes = res.Presses, res.States
		if err == nil {
			out.Presses = make([]int, len(m.Buttons))
			for _, b := range res.Buttons {
				out.Presses[b] = 1
			}
		}
	default:
		var res solver.Result
		res, err = solver.Solve(ctx, m, cfg.Solver)
		out.Total, out.Presses = res.Total, res.Presses
		out.FreeVariables, out.Nodes, out.OracleCalls = res.FreeVariables, res.Nodes, res.OracleCalls
	}
	out.Elapsed = time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	span.SetAttributes(
		attribute.Int("joltage.total", out.Total),
		attribute.Int("joltage.nodes", out.Nodes),
	)

	return out, nil
}
