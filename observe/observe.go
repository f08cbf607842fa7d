package observe

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/toolguard/observe/exporters"
)

// Observer provides access to telemetry primitives.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: Shutdown must honor cancellation/deadlines.
//   - Errors: Shutdown is idempotent; later calls return the first result.
type Observer interface {
	Tracer() trace.Tracer
	Meter() metric.Meter
	Logger() Logger
	Shutdown(ctx context.Context) error
}

// Logger is a minimal structured logging interface.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: logging is best-effort and must not panic.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
	WithOperation(meta OperationMeta) Logger
}

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

type observer struct {
	tracer trace.Tracer
	meter  metric.Meter
	logger Logger

	shutdowns    []func(context.Context) error
	shutdownOnce sync.Once
	shutdownErr  error
}

// NewObserver validates cfg and sets up the enabled subsystems. Disabled
// tracing and metrics use no-op providers; enabled ones are also installed
// as the otel globals.
func NewObserver(ctx context.Context, cfg Config) (Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	))
	if err != nil {
		return nil, fmt.Errorf("observe: resource: %w", err)
	}

	o := &observer{
		tracer: tracenoop.NewTracerProvider().Tracer(cfg.ServiceName),
		meter:  metricnoop.NewMeterProvider().Meter(cfg.ServiceName),
		logger: NopLogger(),
	}

	if cfg.Tracing.Enabled {
		exp, err := exporters.NewTracingExporter(ctx, cfg.Tracing.Exporter)
		if err != nil {
			return nil, fmt.Errorf("observe: tracing: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sampler(cfg.Tracing.SamplePct)),
			sdktrace.WithBatcher(exp),
		)
		otel.SetTracerProvider(tp)
		o.tracer = tp.Tracer(cfg.ServiceName)
		o.shutdowns = append(o.shutdowns, tp.Shutdown)
	}

	if cfg.Metrics.Enabled {
		reader, err := exporters.NewMetricsReader(ctx, cfg.Metrics.Exporter)
		if err != nil {
			_ = o.Shutdown(ctx)
			return nil, fmt.Errorf("observe: metrics: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
		otel.SetMeterProvider(mp)
		o.meter = mp.Meter(cfg.ServiceName)
		o.shutdowns = append(o.shutdowns, mp.Shutdown)
	}

	if cfg.Logging.Enabled {
		o.logger = NewLogger(cfg.Logging.Level)
	}

	return o, nil
}

func sampler(pct float64) sdktrace.Sampler {
	switch {
	case pct >= MaxSamplePct:
		return sdktrace.AlwaysSample()
	case pct <= MinSamplePct:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(pct))
	}
}

func (o *observer) Tracer() trace.Tracer { return o.tracer }
func (o *observer) Meter() metric.Meter  { return o.meter }
func (o *observer) Logger() Logger       { return o.logger }

// Shutdown flushes and stops the providers in reverse setup order.
func (o *observer) Shutdown(ctx context.Context) error {
	o.shutdownOnce.Do(func() {
		var errs []error
		for i := len(o.shutdowns) - 1; i >= 0; i-- {
			if err := o.shutdowns[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			o.shutdownErr = fmt.Errorf("observe: shutdown: %w", errors.Join(errs...))
		}
	})
	return o.shutdownErr
}
