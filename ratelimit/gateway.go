package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonwraymond/toolguard/auth"
	"github.com/jonwraymond/toolguard/observe"
)

// Gateway applies Specs to calls through a Registry.
type Gateway struct {
	registry *Registry
	recorder observe.Recorder
	now      func() time.Time
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

// WithGatewayClock sets the time source used to compute RetryAfter.
func WithGatewayClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGateway creates a Gateway. A nil registry, or one without a backend,
// makes every call skip limiting.
func NewGateway(registry *Registry, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		registry: registry,
		recorder: observe.NopRecorder(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Available reports whether a limiter backend is configured.
func (g *Gateway) Available() bool {
	return g != nil && g.registry.Available()
}

// Registry returns the limiter registry.
func (g *Gateway) Registry() *Registry {
	return g.registry
}

// Enforce checks the quota for one call.
//
// It returns (nil, nil) when limiting was skipped, the limiter result when
// the call is within quota, and a *QuotaExceededError when it is not.
// A limiter that cannot be reached is skipped with a ratelimit_skipped
// event. Invalid specs and malformed results are returned as errors.
func Enforce[I any](ctx context.Context, g *Gateway, spec *Spec[I], operation string, input I, cc auth.CallContext) (*Result, error) {
	if spec == nil || g == nil {
		return nil, nil
	}

	var identifier string
	if spec.Identifier != nil {
		identifier = strings.TrimSpace(spec.Identifier(input, cc))
		if identifier == "" {
			return nil, nil
		}
	} else {
		identifier = auth.ResolveIdentifier(cc)
	}

	if !g.Available() {
		g.recorder.RecordEvent(ctx, observe.EventRateLimitSkipped,
			observe.Field{Key: "reason", Value: observe.ReasonBackendUnavailable})
		return nil, nil
	}

	namespace := spec.namespace(operation)
	limiter, err := g.registry.Get(Config{Namespace: namespace, Limit: spec.Limit, Window: spec.Window})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", namespace, err)
	}

	res, err := limiter.Limit(ctx, identifier)
	switch {
	case err == nil:
	case errors.Is(err, ErrMalformedResult) || ctx.Err() != nil:
		return nil, fmt.Errorf("%s: %w", namespace, err)
	default:
		// Unreachable backend: the call proceeds unlimited.
		g.recorder.RecordEvent(ctx, observe.EventRateLimitSkipped,
			observe.Field{Key: "reason", Value: observe.ReasonBackendUnavailable},
			observe.Field{Key: "error", Value: err.Error()})
		return nil, nil
	}
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", namespace, err)
	}

	if res.Success {
		return res, nil
	}

	// Registry.Get already validated the window.
	window, _ := ParseWindow(spec.Window)
	qe := &QuotaExceededError{
		ErrorCode:  spec.errorCode(),
		Identifier: identifier,
		Limit:      res.Limit,
		Remaining:  res.Remaining,
		Reset:      res.Reset,
		RetryAfter: retryAfter(res.Reset, g.now().Unix(), window),
	}
	g.recorder.RecordEvent(ctx, observe.EventRateLimited,
		observe.Field{Key: "identifier", Value: identifier},
		observe.Field{Key: "limit", Value: qe.Limit},
		observe.Field{Key: "reset", Value: qe.Reset},
		observe.Field{Key: "retry_after", Value: qe.RetryAfter},
	)
	return res, qe
}
