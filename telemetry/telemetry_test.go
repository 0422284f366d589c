package telemetry_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/joltage/batch"
	"github.com/katalvlaran/joltage/logging"
	"github.com/katalvlaran/joltage/machine"
	"github.com/katalvlaran/joltage/telemetry"
)

const sampleInput = `[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
(0) (1) {3,5}
`

func runBatch(t *testing.T, tel *telemetry.Telemetry) {
	t.Helper()
	ms, err := machine.ParseAll(strings.NewReader(sampleInput))
	require.NoError(t, err)

	total, err := batch.SolveAll(context.Background(), ms,
		batch.WithLogger(logging.Nop()),
		batch.WithMetrics(tel.Metrics),
		batch.WithTracer(tel.Tracer()),
	)
	require.NoError(t, err)
	require.Equal(t, 18, total)
}

// TestInit_NoTracing records metrics and keeps spans on a no-op tracer.
func TestInit_NoTracing(t *testing.T) {
	tel, err := telemetry.Init(telemetry.Config{})
	require.NoError(t, err)
	require.False(t, tel.Tracing())

	runBatch(t, tel)
	require.NoError(t, tel.Flush(context.Background()))
	require.NoError(t, tel.Shutdown(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, tel.WriteMetrics(&buf))
	out := buf.String()
	require.Contains(t, out, `joltage_batch_machines_total{mode="joltage",outcome="ok"} 2`)
	require.Contains(t, out, `joltage_batch_runs_total{mode="joltage",outcome="ok"} 1`)
	require.Contains(t, out, "# TYPE joltage_batch_solve_seconds histogram")
	require.Contains(t, out, "joltage_batch_free_variables_count 2")
}

// TestInit_StdoutTracing exports run and machine spans on Shutdown.
func TestInit_StdoutTracing(t *testing.T) {
	var spans bytes.Buffer
	tel, err := telemetry.Init(telemetry.Config{
		Service:       "joltage-test",
		TraceExporter: telemetry.TraceStdout,
		TraceOutput:   &spans,
	})
	require.NoError(t, err)
	require.True(t, tel.Tracing())

	runBatch(t, tel)
	require.NoError(t, tel.Shutdown(context.Background()))

	out := spans.String()
	require.Contains(t, out, `"batch.Run"`)
	require.Equal(t, 2, strings.Count(out, `"batch.Machine"`))
	require.Contains(t, out, "joltage-test")
}

func TestInit_UnknownExporter(t *testing.T) {
	_, err := telemetry.Init(telemetry.Config{TraceExporter: "zipkin"})
	require.ErrorIs(t, err, telemetry.ErrUnknownExporter)
}
