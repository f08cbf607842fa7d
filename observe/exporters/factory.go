// Package exporters builds OpenTelemetry span exporters and metric readers
// by name.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	// ErrUnknownExporter is returned for exporter names not listed here.
	ErrUnknownExporter = errors.New("exporters: unknown exporter")

	// ErrEndpointNotConfigured is returned when a network exporter is
	// selected without its endpoint variable.
	ErrEndpointNotConfigured = errors.New("exporters: endpoint not configured")
)

// Option configures exporter construction.
type Option func(*options)

type options struct {
	stdout     io.Writer
	registerer promclient.Registerer
}

// WithWriter sets the destination of the stdout exporters. Default: os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.stdout = w
		}
	}
}

// WithRegisterer sets where the prometheus reader registers its collector.
// Default: the prometheus default registerer.
func WithRegisterer(r promclient.Registerer) Option {
	return func(o *options) {
		if r != nil {
			o.registerer = r
		}
	}
}

func apply(opts []Option) options {
	o := options{stdout: os.Stdout, registerer: promclient.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type (
	traceFactory  func(context.Context, options) (sdktrace.SpanExporter, error)
	metricFactory func(context.Context, options) (sdkmetric.Reader, error)
)

// "" and "none" discard everything. jaeger is reached over OTLP.
var (
	traceFactories = map[string]traceFactory{
		"":     discardTraces,
		"none": discardTraces,
		"stdout": func(_ context.Context, o options) (sdktrace.SpanExporter, error) {
			return stdouttrace.New(stdouttrace.WithWriter(o.stdout))
		},
		"otlp":   otlpTraces("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"),
		"jaeger": otlpTraces("OTEL_EXPORTER_JAEGER_ENDPOINT"),
	}
	metricFactories = map[string]metricFactory{
		"":           discardMetrics,
		"none":       discardMetrics,
		"stdout":     stdoutMetrics,
		"otlp":       otlpMetrics,
		"prometheus": prometheusMetrics,
	}
)

// NewTracingExporter creates the span exporter registered under name.
func NewTracingExporter(ctx context.Context, name string, opts ...Option) (sdktrace.SpanExporter, error) {
	f, ok := traceFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: tracing %q", ErrUnknownExporter, name)
	}
	return f(ctx, apply(opts))
}

// NewMetricsReader creates the metric reader registered under name.
func NewMetricsReader(ctx context.Context, name string, opts ...Option) (sdkmetric.Reader, error) {
	f, ok := metricFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: metrics %q", ErrUnknownExporter, name)
	}
	return f(ctx, apply(opts))
}

func discardTraces(context.Context, options) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithWriter(io.Discard))
}

func otlpTraces(envKeys ...string) traceFactory {
	return func(ctx context.Context, _ options) (sdktrace.SpanExporter, error) {
		if err := requireEnv(envKeys...); err != nil {
			return nil, err
		}
		return otlptracegrpc.New(ctx)
	}
}

func discardMetrics(context.Context, options) (sdkmetric.Reader, error) {
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}

func stdoutMetrics(_ context.Context, o options) (sdkmetric.Reader, error) {
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(o.stdout))
	if err != nil {
		return nil, fmt.Errorf("exporters: stdout metrics: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}

func otlpMetrics(ctx context.Context, _ options) (sdkmetric.Reader, error) {
	if err := requireEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"); err != nil {
		return nil, err
	}
	exp, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporters: otlp metrics: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}

func prometheusMetrics(_ context.Context, o options) (sdkmetric.Reader, error) {
	exp, err := prometheus.New(prometheus.WithRegisterer(o.registerer))
	if err != nil {
		return nil, fmt.Errorf("exporters: prometheus: %w", err)
	}
	return exp, nil
}

// requireEnv succeeds when any of keys is set.
func requireEnv(keys ...string) error {
	for _, k := range keys {
		if os.Getenv(k) != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: set one of %v", ErrEndpointNotConfigured, keys)
}
