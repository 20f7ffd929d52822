// Package telemetry wires the OpenTelemetry tracer and meter providers
// used by the learner and the serve subcommand: stdout exporters by
// default, OTLP/gRPC tracing when an endpoint is configured, and a
// Prometheus registry for the /metrics endpoint.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	stdoutmetric "go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// tracerName is the shared OTel tracer name for the learning pipeline.
const tracerName = "ripperk.learner"

// Providers bundles the tracer and meter providers a run needs, plus a
// Shutdown that flushes and closes both.
type Providers struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Registry       *prometheus.Exporter
}

// Setup builds the tracer and meter providers. otlpEndpoint, if
// non-empty, switches tracing to OTLP/gRPC; otherwise traces go to
// stdout. The meter always exposes a Prometheus exporter in addition to
// a stdout reader, so `serve` can mount /metrics regardless of whether
// tracing is pushed externally.
func Setup(ctx context.Context, otlpEndpoint string) (*Providers, error) {
	traceExporter, err := newTraceExporter(ctx, otlpEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry: building trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(traceExporter))
	otel.SetTracerProvider(tp)

	promExporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("telemetry: building prometheus exporter: %w", err)
	}
	stdoutReader, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("telemetry: building stdout metric exporter: %w", err)
	}
	mp := metric.NewMeterProvider(
		metric.WithReader(promExporter),
		metric.WithReader(metric.NewPeriodicReader(stdoutReader)),
	)
	otel.SetMeterProvider(mp)

	return &Providers{TracerProvider: tp, MeterProvider: mp, Registry: promExporter}, nil
}

func newTraceExporter(ctx context.Context, otlpEndpoint string) (sdktrace.SpanExporter, error) {
	if otlpEndpoint != "" {
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(otlpEndpoint),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

// Tracer returns the package tracer used to span IREP* calls and
// optimization passes.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// Shutdown flushes and releases both providers. Safe to call with a nil
// Providers (a no-op).
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.TracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutting down tracer provider: %w", err)
	}
	if err := p.MeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutting down meter provider: %w", err)
	}
	return nil
}
