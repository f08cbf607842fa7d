package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonwraymond/toolguard/observe"
)

func TestParseReply(t *testing.T) {
	res, err := parseReply([]any{int64(1), int64(10), int64(7), int64(1_700_000_060_999)})
	if err != nil {
		t.Fatalf("parseReply() error = %v", err)
	}
	want := Result{Success: true, Limit: 10, Remaining: 7, Reset: 1_700_000_061}
	if *res != want {
		t.Errorf("parseReply() = %+v, want %+v", *res, want)
	}

	denied, err := parseReply([]any{int64(0), int64(10), int64(0), int64(1_700_000_060_000)})
	if err != nil || denied.Success {
		t.Errorf("parseReply(denied) = %+v, %v", denied, err)
	}
}

func TestParseReply_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		reply any
	}{
		{name: "not an array", reply: "OK"},
		{name: "nil", reply: nil},
		{name: "short", reply: []any{int64(1), int64(10), int64(9)}},
		{name: "long", reply: []any{int64(1), int64(10), int64(9), int64(0), int64(0)}},
		{name: "string element", reply: []any{int64(1), "10", int64(9), int64(0)}},
		{name: "bad success flag", reply: []any{int64(2), int64(10), int64(9), int64(0)}},
		{name: "zero limit", reply: []any{int64(1), int64(0), int64(0), int64(0)}},
		{name: "remaining above limit", reply: []any{int64(1), int64(10), int64(11), int64(0)}},
		{name: "negative reset", reply: []any{int64(1), int64(10), int64(1), int64(-5000)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseReply(tt.reply); !errors.Is(err, ErrMalformedResult) {
				t.Errorf("parseReply() error = %v, want ErrMalformedResult", err)
			}
		})
	}
}

func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisBackend_UnreachableIsTransportError(t *testing.T) {
	b := NewRedisBackend(unreachableClient(t))
	l, err := b.NewLimiter(Config{Namespace: "ns", Limit: 1, Window: "1s"})
	if err != nil {
		t.Fatalf("NewLimiter() error = %v", err)
	}

	_, err = l.Limit(context.Background(), "id")
	if err == nil {
		t.Fatal("Limit() error = nil against unreachable redis")
	}
	if errors.Is(err, ErrMalformedResult) {
		t.Errorf("transport failure reported as malformed: %v", err)
	}
	if err := b.Ping(context.Background()); err == nil {
		t.Error("Ping() error = nil")
	}
}

func TestEnforce_UnreachableRedisSkips(t *testing.T) {
	rec := &eventLog{}
	g := NewGateway(NewRegistry(NewRedisBackend(unreachableClient(t))), WithRecorder(rec))
	spec := &Spec[searchInput]{Limit: 10, Window: "1 m"}

	res, err := Enforce(context.Background(), g, spec, "search", searchInput{}, userCall("u"))
	if res != nil || err != nil {
		t.Fatalf("Enforce() = %v, %v; want skip", res, err)
	}
	if len(rec.names) != 1 || rec.names[0] != observe.EventRateLimitSkipped {
		t.Fatalf("events = %v", rec.names)
	}
	if rec.fields[0]["reason"] != observe.ReasonBackendUnavailable {
		t.Errorf("reason = %v", rec.fields[0]["reason"])
	}
}
