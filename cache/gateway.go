package cache

import (
	"context"
	"time"

	"github.com/jonwraymond/toolguard/observe"
)

// Gateway connects typed cache reads and writes to a Store. A Gateway with
// a nil Store is valid and reports every call as skipped.
type Gateway struct {
	store    Store
	recorder observe.Recorder
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithRecorder sets the event recorder.
func WithRecorder(r observe.Recorder) GatewayOption {
	return func(g *Gateway) {
		if r != nil {
			g.recorder = r
		}
	}
}

// NewGateway creates a Gateway over store, which may be nil.
func NewGateway(store Store, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		store:    store,
		recorder: observe.NopRecorder(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Available reports whether a store is configured.
func (g *Gateway) Available() bool {
	return g != nil && g.store != nil
}

// Read looks key up and decodes the stored value. Any failure is reported
// as a miss together with a cache_error event.
func Read[I, O any](ctx context.Context, g *Gateway, spec *Spec[I, O], key string, input I, startedAt time.Time) (O, bool) {
	var zero O
	if g == nil || spec == nil || key == "" {
		return zero, false
	}
	if g.store == nil {
		g.recorder.RecordEvent(ctx, observe.EventCacheSkipped,
			observe.Field{Key: "reason", Value: observe.ReasonBackendUnavailable})
		return zero, false
	}

	data, found, err := g.store.Get(ctx, key)
	if err != nil {
		g.recordError(ctx, key, err)
		return zero, false
	}
	if !found {
		g.recorder.RecordEvent(ctx, observe.EventCacheMiss, observe.Field{Key: "key", Value: key})
		return zero, false
	}

	value, err := spec.deserialize(data)
	if err != nil {
		g.recordError(ctx, key, err)
		return zero, false
	}
	if spec.OnHit != nil {
		value = spec.OnHit(value, input, HitInfo{Key: key, StartedAt: startedAt})
	}

	g.recorder.RecordEvent(ctx, observe.EventCacheHit, observe.Field{Key: "key", Value: key})
	return value, true
}

// Write encodes result and stores it under key. Failures are recorded as
// cache_error events and never returned.
func Write[I, O any](ctx context.Context, g *Gateway, spec *Spec[I, O], key string, input I, result O) {
	if !g.Available() || spec == nil || key == "" {
		return
	}

	data, ok, err := spec.serialize(result, input)
	if err != nil {
		g.recordError(ctx, key, err)
		return
	}
	if !ok {
		return
	}

	ttl := EffectiveTTL(spec.ttl(input, result))
	if err := g.store.Set(ctx, key, data, ttl); err != nil {
		g.recordError(ctx, key, err)
		return
	}

	g.recorder.RecordEvent(ctx, observe.EventCacheWrite,
		observe.Field{Key: "key", Value: key},
		observe.Field{Key: "ttl_seconds", Value: int64(ttl / time.Second)},
	)
}

func (g *Gateway) recordError(ctx context.Context, key string, err error) {
	g.recorder.RecordEvent(ctx, observe.EventCacheError,
		observe.Field{Key: "key", Value: key},
		observe.Field{Key: "reason", Value: err.Error()},
	)
}
