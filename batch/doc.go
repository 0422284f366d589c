// Package batch solves many machines concurrently and sums their minima.
//
// # Description
//
// Machines are independent, so Run fans them out over a bounded errgroup
// (Config.Workers goroutines, GOMAXPROCS by default). Each worker writes its
// MachineResult into a pre-sized slice by index; the total is a plain sum,
// so completion order never matters.
//
// Any failure aborts the whole batch: the group context is cancelled and the
// first failure is returned as *MachineError. An infeasible machine reads
// "no feasible solution for machine N" and still matches solver.ErrInfeasible
// (or indicator.ErrUnreachable) through errors.Is. There are no retries; a
// solve is deterministic and would fail the same way again.
//
// # Observability
//
//   - log/slog: run start and finish at Info, one Debug record per machine,
//     all tagged with the run's RunID.
//   - OpenTelemetry: one "batch.Run" span with a child "batch.Machine" span per
//     machine; failures set codes.Error.
//   - Prometheus: optional Metrics (see NewMetrics) counting machines by
//     outcome and observing solve time, search nodes and free variables.
//
// # Example
//
//	total, err := batch.SolveAll(ctx, machines, batch.WithWorkers(4))
package batch
