package observe

import (
	"bytes"
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// TestRecorder_AddsSpanEvent verifies events land on the span in the context.
func TestRecorder_AddsSpanEvent(t *testing.T) {
	spans, tr := newRecordingTracer()
	rec := NewRecorder(nil, nil)

	ctx, span := tr.StartSpan(context.Background(), OperationMeta{Name: "search"})
	rec.RecordEvent(ctx, EventCacheSkipped, Field{Key: "reason", Value: ReasonBackendUnavailable})
	rec.RecordEvent(ctx, EventCacheMiss, Field{Key: "token", Value: "secret-value"})
	tr.EndSpan(span, nil)

	events := spans.Ended()[0].Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Name != EventCacheSkipped {
		t.Errorf("expected %q, got %q", EventCacheSkipped, events[0].Name)
	}
	reason := attrMap(events[0].Attributes)["reason"]
	if reason.AsString() != ReasonBackendUnavailable {
		t.Errorf("expected reason=%q, got %v", ReasonBackendUnavailable, reason.Emit())
	}
	if v := attrMap(events[1].Attributes)["token"]; v.AsString() != RedactedValue {
		t.Errorf("expected token redacted on event, got %v", v.Emit())
	}
}

// TestRecorder_NoSpanIsSafe verifies recording without a span does not panic.
func TestRecorder_NoSpanIsSafe(t *testing.T) {
	rec := NewRecorder(nil, nil)
	rec.RecordEvent(context.Background(), EventCacheHit)
	NopRecorder().RecordEvent(context.Background(), EventCacheHit)
}

// TestRecorder_LogsDegradeAtWarn verifies degrade events are logged at warn level.
func TestRecorder_LogsDegradeAtWarn(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(NewLoggerWithWriter("warn", &buf), nil)

	rec.RecordEvent(context.Background(), EventCacheHit)
	rec.RecordEvent(context.Background(), EventCacheError, Field{Key: "reason", Value: "timeout"})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected only the degrade event to be logged, got %d entries", len(entries))
	}
	if entries[0]["event"] != EventCacheError || entries[0]["level"] != "warn" {
		t.Errorf("unexpected entry: %v", entries[0])
	}
}

// TestRecorder_CountsEvents verifies events feed the metrics counter.
func TestRecorder_CountsEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	rec := NewRecorder(nil, m)
	rec.RecordEvent(context.Background(), EventRateLimited)

	if got := sumValue(t, findMetric(collect(t, reader), "tool.guard.events")); got != 1 {
		t.Errorf("expected 1 event, got %d", got)
	}
}
