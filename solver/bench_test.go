package solver_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/solver"
)

var sinkR solver.Result

func benchSolve(b *testing.B, opts solver.Options) {
	b.Helper()
	ms := make([]machine.Machine, 0, len(samples))
	for _, s := range samples {
		m, err := machine.Parse(s.line)
		if err != nil {
			b.Fatal(err)
		}
		ms = append(ms, m)
	}
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range ms {
			sinkR, _ = solver.Solve(ctx, m, opts)
		}
	}
}

func BenchmarkSolve_GlobalBound(b *testing.B) { benchSolve(b, solver.DefaultOptions()) }

func BenchmarkSolve_PerButtonBound(b *testing.B) {
	benchSolve(b, solver.NewOptions(solver.WithBound(solver.PerButtonBound)))
}
