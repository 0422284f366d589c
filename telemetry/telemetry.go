// Package telemetry builds the metrics registry and the tracer provider the
// joltage commands hand to package batch.
//
// A Telemetry owns one Prometheus registry holding the batch collectors and,
// when a trace exporter is selected, an OpenTelemetry TracerProvider. The
// commands are short-lived, so metrics are written out on demand
// (WriteMetrics) instead of being scraped, and spans are flushed on
// Shutdown or Flush.
//
// Example:
//
//	tel, err := telemetry.Init(telemetry.Config{TraceExporter: telemetry.TraceStdout, TraceOutput: os.Stderr})
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//	rep, err := batch.Run(ctx, machines, batch.Config{Metrics: tel.Metrics, Tracer: tel.Tracer()})
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/katalvlaran/joltage/batch"
)

// Trace exporter names accepted by Config.TraceExporter.
const (
	TraceNone   = "none"
	TraceStdout = "stdout"
)

// scopeName is the instrumentation scope of Tracer.
const scopeName = "github.com/katalvlaran/joltage"

// ErrUnknownExporter is returned by Init for an unsupported trace exporter.
var ErrUnknownExporter = errors.New("telemetry: unknown trace exporter")

// Config selects what Init builds.
type Config struct {
	// Service and Version identify the process in span resources.
	Service string
	Version string

	// TraceExporter is TraceNone ("" as well) or TraceStdout.
	TraceExporter string

	// TraceOutput receives stdout spans as JSON lines; nil means os.Stderr.
	TraceOutput io.Writer
}

// Telemetry is the per-process metrics and tracing state.
//
// Thread Safety: safe for concurrent use after Init.
type Telemetry struct {
	// Registry holds every joltage collector.
	Registry *prometheus.Registry

	// Metrics are the batch collectors, registered with Registry.
	Metrics *batch.Metrics

	provider *sdktrace.TracerProvider // nil when tracing is off
	tracer   trace.Tracer
}

// Init creates the registry, the batch metrics and, unless tracing is off,
// a TracerProvider exporting every span through cfg.TraceExporter.
func Init(cfg Config) (*Telemetry, error) {
	reg := prometheus.NewRegistry()
	t := &Telemetry{
		Registry: reg,
		Metrics:  batch.NewMetrics(reg),
		tracer:   noop.NewTracerProvider().Tracer(scopeName),
	}

	switch cfg.TraceExporter {
	case "", TraceNone:
		return t, nil
	case TraceStdout:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.TraceExporter)
	}

	out := cfg.TraceOutput
	if out == nil {
		out = os.Stderr
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out), stdouttrace.WithoutTimestamps())
	if err != nil {
		return nil, fmt.Errorf("telemetry: stdout exporter: %w", err)
	}

	service := cfg.Service
	if service == "" {
		service = "joltage"
	}
	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", service),
		attribute.String("service.version", cfg.Version),
	)
	t.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	t.tracer = t.provider.Tracer(scopeName)

	return t, nil
}

// Tracer returns the tracer for batch spans; a no-op tracer when tracing is off.
func (t *Telemetry) Tracer() trace.Tracer { return t.tracer }

// Tracing reports whether spans are exported.
func (t *Telemetry) Tracing() bool { return t.provider != nil }

// Flush exports the spans buffered so far.
func (t *Telemetry) Flush(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}

	return t.provider.ForceFlush(ctx)
}

// Shutdown flushes and stops the tracer provider. It is safe to call on a
// Telemetry without tracing.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}

	return t.provider.Shutdown(ctx)
}

// WriteMetrics writes every collected metric family to w in the Prometheus
// text exposition format.
func (t *Telemetry) WriteMetrics(w io.Writer) error {
	families, err := t.Registry.Gather()
	if err != nil {
		return fmt.Errorf("telemetry: gather: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("telemetry: write %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
