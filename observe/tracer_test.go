package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newRecordingTracer() (*tracetest.SpanRecorder, Tracer) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return recorder, NewTracer(tp.Tracer("test"))
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}
	return m
}

// TestOperationMeta_SpanName verifies span naming with and without alias.
func TestOperationMeta_SpanName(t *testing.T) {
	tests := []struct {
		name     string
		meta     OperationMeta
		expected string
	}{
		{name: "name only", meta: OperationMeta{Name: "search_flights"}, expected: "tool.search_flights"},
		{name: "alias wins", meta: OperationMeta{Name: "search_flights", Alias: "flights"}, expected: "tool.flights"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.meta.SpanName(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestTracer_SpanAttributes verifies operation and caller attributes are present on span.
func TestTracer_SpanAttributes(t *testing.T) {
	recorder, tr := newRecordingTracer()
	meta := OperationMeta{
		Name:     "search_hotels",
		CallID:   "call-1",
		Workflow: "trip-planner",
	}

	_, span := tr.StartSpan(context.Background(), meta, attribute.String("city", "Lisbon"))
	tr.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != "tool.search_hotels" {
		t.Errorf("expected span name 'tool.search_hotels', got %q", s.Name())
	}

	attrs := attrMap(s.Attributes())
	if v := attrs["tool.name"]; v.AsString() != "search_hotels" {
		t.Errorf("expected tool.name='search_hotels', got %v", v)
	}
	if v := attrs["tool.call_id"]; v.AsString() != "call-1" {
		t.Errorf("expected tool.call_id='call-1', got %v", v)
	}
	if v := attrs["tool.workflow"]; v.AsString() != "trip-planner" {
		t.Errorf("expected tool.workflow='trip-planner', got %v", v)
	}
	if v := attrs["city"]; v.AsString() != "Lisbon" {
		t.Errorf("expected city='Lisbon', got %v", v)
	}
	if s.Status().Code != codes.Unset {
		t.Errorf("expected status Unset, got %v", s.Status().Code)
	}
}

// TestTracer_SpanAttributesMinimal verifies optional attributes are omitted.
func TestTracer_CallerAttributesCannotOverrideOperation(t *testing.T) {
	recorder, tr := newRecordingTracer()
	meta := OperationMeta{Name: "search_hotels", CallID: "call-1"}

	_, span := tr.StartSpan(context.Background(), meta,
		attribute.String("tool.name", "spoofed"),
		attribute.String("tool.call_id", "other"),
		attribute.String("city", "Porto"),
	)
	tr.EndSpan(span, nil)

	attrs := attrMap(recorder.Ended()[0].Attributes())
	if got := attrs["tool.name"].AsString(); got != "search_hotels" {
		t.Errorf("tool.name = %q, want search_hotels", got)
	}
	if got := attrs["tool.call_id"].AsString(); got != "call-1" {
		t.Errorf("tool.call_id = %q, want call-1", got)
	}
	if got := attrs["city"].AsString(); got != "Porto" {
		t.Errorf("city = %q, want Porto", got)
	}
}

func TestTracer_SpanAttributesMinimal(t *testing.T) {
	recorder, tr := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), OperationMeta{Name: "ping"})
	tr.EndSpan(span, nil)

	attrs := attrMap(recorder.Ended()[0].Attributes())
	if _, ok := attrs["tool.call_id"]; ok {
		t.Error("tool.call_id should be omitted when empty")
	}
	if _, ok := attrs["tool.workflow"]; ok {
		t.Error("tool.workflow should be omitted when empty")
	}
}

// TestTracer_ContextPropagation verifies the returned context carries the span.
func TestTracer_ContextPropagation(t *testing.T) {
	_, tr := newRecordingTracer()

	ctx, span := tr.StartSpan(context.Background(), OperationMeta{Name: "ping"})
	defer tr.EndSpan(span, nil)

	if got := trace.SpanFromContext(ctx); got.SpanContext().SpanID() != span.SpanContext().SpanID() {
		t.Error("expected context to carry the started span")
	}
}

// TestTracer_ErrorRecording verifies errors set status and an exception event.
func TestTracer_ErrorRecording(t *testing.T) {
	recorder, tr := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), OperationMeta{Name: "book"})
	tr.EndSpan(span, errors.New("supplier down"))

	s := recorder.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Errorf("expected status Error, got %v", s.Status().Code)
	}
	if s.Status().Description != "supplier down" {
		t.Errorf("unexpected status description %q", s.Status().Description)
	}
	if len(s.Events()) == 0 || s.Events()[0].Name != "exception" {
		t.Errorf("expected exception event, got %v", s.Events())
	}
}

// TestAttributes_Redaction verifies configured and default keys are masked.
func TestAttributes_Redaction(t *testing.T) {
	attrs := attrMap(Attributes(map[string]any{
		"email":    "ana@example.com",
		"password": "hunter2",
		"city":     "Porto",
		"nights":   3,
		"refund":   true,
		"price":    99.5,
	}, "email"))

	if v := attrs["email"]; v.AsString() != RedactedValue {
		t.Errorf("expected email redacted, got %v", v.Emit())
	}
	if v := attrs["password"]; v.AsString() != RedactedValue {
		t.Errorf("expected password redacted, got %v", v.Emit())
	}
	if v := attrs["city"]; v.AsString() != "Porto" {
		t.Errorf("expected city='Porto', got %v", v.Emit())
	}
	if v := attrs["nights"]; v.AsInt64() != 3 {
		t.Errorf("expected nights=3, got %v", v.Emit())
	}
	if v := attrs["refund"]; !v.AsBool() {
		t.Errorf("expected refund=true, got %v", v.Emit())
	}
	if v := attrs["price"]; v.AsFloat64() != 99.5 {
		t.Errorf("expected price=99.5, got %v", v.Emit())
	}
}

// TestAttributes_SortedAndEmpty verifies deterministic ordering and nil for empty input.
func TestAttributes_SortedAndEmpty(t *testing.T) {
	if got := Attributes(nil); got != nil {
		t.Errorf("expected nil for empty map, got %v", got)
	}

	attrs := Attributes(map[string]any{"b": "2", "a": "1", "c": "3"})
	for i, want := range []string{"a", "b", "c"} {
		if string(attrs[i].Key) != want {
			t.Errorf("position %d: expected %q, got %q", i, want, attrs[i].Key)
		}
	}
}

// TestNoopTracer verifies the noop tracer is safe to use.
func TestNoopTracer(t *testing.T) {
	tr := NewNoopTracer()
	_, span := tr.StartSpan(context.Background(), OperationMeta{Name: "x"})
	tr.EndSpan(span, errors.New("ignored"))
	if span.IsRecording() {
		t.Error("noop span should not record")
	}
}
