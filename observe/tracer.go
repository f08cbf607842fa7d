package observe

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// RedactedValue replaces the value of any redacted attribute or log field.
const RedactedValue = "[REDACTED]"

// OperationMeta describes one guarded operation call for telemetry purposes.
type OperationMeta struct {
	Name     string // Operation name (required)
	Alias    string // Span name override (optional)
	CallID   string // Call-scoped correlation id (optional)
	Workflow string // Workflow tag (optional)
}

// SpanName returns the deterministic span name for this operation.
// Format: tool.<alias> or tool.<name>
func (m OperationMeta) SpanName() string {
	if m.Alias != "" {
		return "tool." + m.Alias
	}
	return "tool." + m.Name
}

// attributes returns the base span attributes for the operation.
func (m OperationMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("tool.name", m.Name),
	}
	if m.CallID != "" {
		attrs = append(attrs, attribute.String("tool.call_id", m.CallID))
	}
	if m.Workflow != "" {
		attrs = append(attrs, attribute.String("tool.workflow", m.Workflow))
	}
	return attrs
}

// operationKey reports whether key is set from OperationMeta. Caller
// attributes with these keys are dropped.
func operationKey(key attribute.Key) bool {
	switch key {
	case "tool.name", "tool.call_id", "tool.workflow":
		return true
	}
	return false
}

// Tracer wraps OpenTelemetry tracing with operation-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a guarded call.
	StartSpan(ctx context.Context, meta OperationMeta, attrs ...attribute.KeyValue) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with operation metadata and the given
// attributes. Attributes should already be redacted (see Attributes) and
// cannot override the operation's own tool.* keys.
func (t *tracerImpl) StartSpan(ctx context.Context, meta OperationMeta, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := meta.attributes()
	for _, kv := range attrs {
		if !operationKey(kv.Key) {
			all = append(all, kv)
		}
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(all...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta OperationMeta, _ ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ error) {
	span.End()
}

// Attributes converts a map of attribute values to OpenTelemetry attributes.
// Keys listed in redactKeys, or in RedactedFields, carry RedactedValue.
// The result is sorted by key.
func Attributes(values map[string]any, redactKeys ...string) []attribute.KeyValue {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]attribute.KeyValue, 0, len(keys))
	for _, k := range keys {
		if isRedacted(k, redactKeys) {
			attrs = append(attrs, attribute.String(k, RedactedValue))
			continue
		}
		attrs = append(attrs, toAttribute(k, values[k]))
	}
	return attrs
}

func isRedacted(key string, redactKeys []string) bool {
	return slices.Contains(redactKeys, key) || isRedactedField(key)
}

func toAttribute(key string, v any) attribute.KeyValue {
	switch val := v.(type) {
	case string:
		return attribute.String(key, val)
	case bool:
		return attribute.Bool(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case []string:
		return attribute.StringSlice(key, val)
	case fmt.Stringer:
		return attribute.String(key, val.String())
	default:
		return attribute.String(key, fmt.Sprint(val))
	}
}
