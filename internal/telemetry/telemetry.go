// Package telemetry provides OpenTelemetry tracing and Prometheus metrics.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "lantern"

// TracingOptions selects where dungeon traces are sent.
type TracingOptions struct {
	// Endpoint is an OTLP/HTTP base URL. Empty falls back to the
	// OTEL_EXPORTER_OTLP_* variables.
	Endpoint string
	Headers  map[string]string
	Insecure bool

	// SampleRatio is the fraction of root spans kept. Zero or values >= 1
	// keep all.
	SampleRatio float64

	ServiceVersion string
	Environment    string

	// Exporter replaces the OTLP exporter when set.
	Exporter sdktrace.SpanExporter
}

// Setup installs a global tracer provider built from opts and returns its
// shutdown function, which flushes pending spans.
func Setup(ctx context.Context, opts TracingOptions) (shutdown func(context.Context) error, err error) {
	exporter := opts.Exporter
	if exporter == nil {
		exporter, err = otlptracehttp.New(ctx, exporterOptions(opts)...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
	}

	res, err := newResource(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(opts.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func exporterOptions(opts TracingOptions) []otlptracehttp.Option {
	var out []otlptracehttp.Option
	if opts.Endpoint != "" {
		out = append(out, otlptracehttp.WithEndpointURL(opts.Endpoint))
	}
	if len(opts.Headers) > 0 {
		out = append(out, otlptracehttp.WithHeaders(opts.Headers))
	}
	if opts.Insecure {
		out = append(out, otlptracehttp.WithInsecure())
	}
	return out
}

// newResource builds its own resource rather than merging with
// resource.Default(), whose schema URL can conflict.
func newResource(ctx context.Context, opts TracingOptions) (*resource.Resource, error) {
	version := opts.ServiceVersion
	if version == "" {
		version = "dev"
	}
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	}
	if opts.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment", opts.Environment))
	}

	return resource.New(ctx,
		resource.WithAttributes(attrs...),
		resource.WithHost(),
		resource.WithOSType(),
		resource.WithProcessRuntimeVersion(),
	)
}

// sampler keeps every generation by default; a partial ratio applies to root
// spans only so phase spans stay with their parent.
func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// Tracer returns a named tracer for the given component.
// Until Setup runs, the global provider hands out no-op tracers.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}
