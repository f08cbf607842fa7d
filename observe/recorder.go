package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Guardrail event names recorded on the active span.
const (
	EventCacheHit         = "cache_hit"
	EventCacheMiss        = "cache_miss"
	EventCacheError       = "cache_error"
	EventCacheSkipped     = "cache_skipped"
	EventCacheWrite       = "cache_write"
	EventRateLimited      = "rate_limited"
	EventRateLimitSkipped = "ratelimit_skipped"
)

// ReasonBackendUnavailable tags events emitted when a guardrail backend is
// not configured or cannot be reached.
const ReasonBackendUnavailable = "redis_unavailable"

// Recorder records discrete guardrail events.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: recording is best-effort, must not panic and must never alter
//     the control flow of the caller.
type Recorder interface {
	RecordEvent(ctx context.Context, name string, fields ...Field)
}

// recorder attaches events to the span in ctx, counts them and logs them.
type recorder struct {
	logger  Logger
	metrics Metrics
}

// NewRecorder creates a Recorder that writes to the span found in the
// context, the given metrics and the given logger. Nil arguments are
// replaced by no-op implementations.
func NewRecorder(logger Logger, metrics Metrics) Recorder {
	if logger == nil {
		logger = &noopLogger{}
	}
	if metrics == nil {
		metrics = &noopMetrics{}
	}
	return &recorder{logger: logger, metrics: metrics}
}

// NopRecorder returns a Recorder that discards every event.
func NopRecorder() Recorder {
	return nopRecorder{}
}

func (r *recorder) RecordEvent(ctx context.Context, name string, fields ...Field) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(fieldAttributes(fields)...))
	}

	r.metrics.RecordEvent(ctx, name)

	fields = append([]Field{{Key: "event", Value: name}}, fields...)
	switch name {
	case EventCacheError, EventCacheSkipped, EventRateLimitSkipped:
		r.logger.Warn(ctx, "guardrail degraded", fields...)
	case EventRateLimited:
		r.logger.Info(ctx, "rate limit exceeded", fields...)
	default:
		r.logger.Debug(ctx, "guardrail event", fields...)
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordEvent(context.Context, string, ...Field) {}

func fieldAttributes(fields []Field) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(fields))
	for _, f := range fields {
		if isRedactedField(f.Key) {
			attrs = append(attrs, attribute.String(f.Key, RedactedValue))
			continue
		}
		attrs = append(attrs, toAttribute(f.Key, f.Value))
	}
	return attrs
}
