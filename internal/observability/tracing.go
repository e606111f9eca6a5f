// Package observability wires the OpenTelemetry SDK.
package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Exporter tuning.
const (
	ExportTimeout = 10 * time.Second
	MaxQueueSize  = 2048
)

// ErrNoEndpoint is returned when tracing is requested without a collector address.
var ErrNoEndpoint = errors.New("otlp endpoint is required")

// TracingConfig describes where spans go and how the service identifies itself.
type TracingConfig struct {
	Endpoint       string // host:port of an OTLP/HTTP collector
	Insecure       bool
	ServiceName    string
	ServiceVersion string
}

// SetupTracing installs a global tracer provider exporting spans over OTLP/HTTP
// and a W3C trace-context propagator. The returned function flushes and stops
// the provider.
func SetupTracing(ctx context.Context, cfg TracingConfig) (shutdown func(context.Context) error, err error) {
	if cfg.Endpoint == "" {
		return nil, ErrNoEndpoint
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter,
			sdktrace.WithExportTimeout(ExportTimeout),
			sdktrace.WithMaxQueueSize(MaxQueueSize),
		)),
	)

	otel.SetTracerProvider(provider)
	InstallPropagator()

	return provider.Shutdown, nil
}

// InstallPropagator sets the global propagator to W3C trace context plus baggage.
func InstallPropagator() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
