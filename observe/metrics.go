package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records guarded-call metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordInvocation records one guarded call with duration and error status.
	RecordInvocation(ctx context.Context, meta OperationMeta, duration time.Duration, err error)

	// RecordEvent counts one guardrail event (cache_hit, rate_limited, ...).
	RecordEvent(ctx context.Context, event string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	invocations  metric.Int64Counter
	errorCount   metric.Int64Counter
	events       metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	return newMetrics(meter)
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	invocations, err := meter.Int64Counter(
		"tool.guard.invocations",
		metric.WithDescription("Total number of guarded operation calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"tool.guard.errors",
		metric.WithDescription("Total number of guarded calls that returned an error"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	events, err := meter.Int64Counter(
		"tool.guard.events",
		metric.WithDescription("Guardrail events by name"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"tool.guard.duration_ms",
		metric.WithDescription("Guarded call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		invocations:  invocations,
		errorCount:   errorCount,
		events:       events,
		durationHist: durationHist,
	}, nil
}

// RecordInvocation records metrics for a guarded call.
func (m *metricsImpl) RecordInvocation(ctx context.Context, meta OperationMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("tool.name", meta.Name))

	m.invocations.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordEvent increments the event counter.
func (m *metricsImpl) RecordEvent(ctx context.Context, event string) {
	m.events.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event)))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

// NewNoopMetrics returns a Metrics that records nothing.
func NewNoopMetrics() Metrics {
	return &noopMetrics{}
}

func (m *noopMetrics) RecordInvocation(context.Context, OperationMeta, time.Duration, error) {}

func (m *noopMetrics) RecordEvent(context.Context, string) {}
