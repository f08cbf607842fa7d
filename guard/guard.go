package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/toolguard/auth"
	"github.com/jonwraymond/toolguard/cache"
	"github.com/jonwraymond/toolguard/observe"
	"github.com/jonwraymond/toolguard/ratelimit"
)

// Span attribute keys set by Run.
const (
	AttrCacheHit    = "cache_hit"
	AttrRateLimited = "tool.rate_limited"
)

// Guard holds the shared guardrail gateways and telemetry.
type Guard struct {
	cache     *cache.Gateway
	limits    *ratelimit.Gateway
	auth      auth.Authenticator
	inst      observe.Instruments
	now       func() time.Time
	newCallID func() string
}

// Option configures a Guard.
type Option func(*Guard)

// WithCacheGateway sets the cache gateway.
func WithCacheGateway(g *cache.Gateway) Option {
	return func(gd *Guard) {
		gd.cache = g
	}
}

// WithRateLimitGateway sets the rate limit gateway.
func WithRateLimitGateway(g *ratelimit.Gateway) Option {
	return func(gd *Guard) {
		gd.limits = g
	}
}

// WithAuthenticator verifies call credentials before any guardrail runs.
// The verified identity is attached to the CallContext, so the rate limiter
// can key on its principal. Calls without credentials proceed anonymously.
func WithAuthenticator(a auth.Authenticator) Option {
	return func(gd *Guard) {
		gd.auth = a
	}
}

// WithInstruments sets the tracer, metrics, logger and event recorder.
func WithInstruments(inst observe.Instruments) Option {
	return func(gd *Guard) {
		gd.inst = inst
	}
}

// WithClock sets the time source for startedAt and durations.
func WithClock(now func() time.Time) Option {
	return func(gd *Guard) {
		if now != nil {
			gd.now = now
		}
	}
}

// WithCallIDGenerator sets how missing call ids are filled.
func WithCallIDGenerator(fn func() string) Option {
	return func(gd *Guard) {
		if fn != nil {
			gd.newCallID = fn
		}
	}
}

// New creates a Guard. Without gateways every guardrail is skipped and
// reported as unavailable.
func New(opts ...Option) *Guard {
	g := &Guard{
		inst:      observe.NopInstruments(),
		now:       time.Now,
		newCallID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.inst = fillInstruments(g.inst)
	if g.cache == nil {
		g.cache = cache.NewGateway(nil, cache.WithRecorder(g.inst.Recorder))
	}
	if g.limits == nil {
		g.limits = ratelimit.NewGateway(nil, ratelimit.WithRecorder(g.inst.Recorder))
	}
	return g
}

func fillInstruments(inst observe.Instruments) observe.Instruments {
	nop := observe.NopInstruments()
	if inst.Tracer == nil {
		inst.Tracer = nop.Tracer
	}
	if inst.Metrics == nil {
		inst.Metrics = nop.Metrics
	}
	if inst.Logger == nil {
		inst.Logger = nop.Logger
	}
	if inst.Recorder == nil {
		inst.Recorder = nop.Recorder
	}
	return inst
}

// Outcome is the result of a guarded call.
type Outcome[O any] struct {
	Value O

	// CacheHit is true when Value came from the cache.
	CacheHit bool

	// RateLimit is the limiter result, nil when limiting was skipped.
	RateLimit *ratelimit.Result
}

// Func is a guarded operation bound to its configuration.
type Func[I, O any] func(ctx context.Context, cc auth.CallContext, input I) (O, error)

// Wrap binds op and cfg into a reusable Func.
func Wrap[I, O any](g *Guard, op Operation[I, O], cfg Config[I, O]) Func[I, O] {
	return func(ctx context.Context, cc auth.CallContext, input I) (O, error) {
		return Invoke(ctx, g, op, cfg, cc, input)
	}
}

// Invoke runs op and returns only its value.
func Invoke[I, O any](ctx context.Context, g *Guard, op Operation[I, O], cfg Config[I, O], cc auth.CallContext, input I) (O, error) {
	out, err := Run(ctx, g, op, cfg, cc, input)
	return out.Value, err
}

// Run executes op behind the guardrails in cfg.
//
// Order: authenticate, validate, rate limit, cache read, execute, cache
// write. A
// *ratelimit.QuotaExceededError stops the call before the cache is touched.
// Errors returned by op.Execute are passed through unwrapped.
func Run[I, O any](ctx context.Context, g *Guard, op Operation[I, O], cfg Config[I, O], cc auth.CallContext, input I) (out Outcome[O], err error) {
	if err := op.check(); err != nil {
		return out, err
	}
	if g == nil {
		g = New()
	}

	startedAt := g.now()
	if cc.CallID == "" {
		cc.CallID = g.newCallID()
	}

	meta := observe.OperationMeta{Name: op.Name, CallID: cc.CallID, Workflow: cc.Workflow}
	var attrs []attribute.KeyValue
	if t := cfg.Telemetry; t != nil {
		meta.Alias = t.Name
		if meta.Workflow == "" {
			meta.Workflow = t.Workflow
		}
		if t.Attributes != nil {
			attrs = observe.Attributes(t.Attributes(input), t.RedactKeys...)
		}
	}

	ctx, span := g.inst.Tracer.StartSpan(ctx, meta, attrs...)
	defer func() {
		g.finish(ctx, span, meta, startedAt, out.CacheHit, err)
	}()

	cc, err = auth.Verify(ctx, g.auth, cc)
	if err != nil {
		return out, fmt.Errorf("guard: %s: %w", op.Name, err)
	}
	ctx = auth.WithCallContext(ctx, cc)

	if op.Validate != nil {
		if verr := op.Validate(input); verr != nil {
			return out, fmt.Errorf("%w: %s: %w", ErrInvalidInput, op.Name, verr)
		}
	}

	if cfg.RateLimit != nil {
		res, rerr := ratelimit.Enforce(ctx, g.limits, cfg.RateLimit, op.Name, input, cc)
		out.RateLimit = res
		if rerr != nil {
			return out, rerr
		}
	}

	var key string
	if cfg.Cache != nil {
		k, ok, kerr := cache.ResolveKey(cfg.Cache, op.Name, input)
		switch {
		case kerr != nil:
			g.inst.Recorder.RecordEvent(ctx, observe.EventCacheError,
				observe.Field{Key: "reason", Value: kerr.Error()})
		case ok:
			key = k
			if value, hit := cache.Read(ctx, g.cache, cfg.Cache, key, input, startedAt); hit {
				span.SetAttributes(attribute.Bool(AttrCacheHit, true))
				out.Value = value
				out.CacheHit = true
				return out, nil
			}
		}
	}

	span.SetAttributes(attribute.Bool(AttrCacheHit, false))
	value, err := op.Execute(ctx, cc, input)
	if err != nil {
		return out, err
	}
	out.Value = value

	if key != "" {
		cache.Write(ctx, g.cache, cfg.Cache, key, input, value)
	}
	return out, nil
}

// finish closes the span and records metrics and the invocation log line.
// A quota-exceeded failure is tagged on the span and does not mark it as an
// error.
func (g *Guard) finish(ctx context.Context, span trace.Span, meta observe.OperationMeta, startedAt time.Time, cacheHit bool, err error) {
	duration := g.now().Sub(startedAt)
	rateLimited := errors.Is(err, ratelimit.ErrRateLimitExceeded)

	if rateLimited {
		span.SetAttributes(attribute.Bool(AttrRateLimited, true))
		g.inst.Tracer.EndSpan(span, nil)
	} else {
		g.inst.Tracer.EndSpan(span, err)
	}

	g.inst.Metrics.RecordInvocation(ctx, meta, duration, err)

	logger := g.inst.Logger.WithOperation(meta)
	fields := []observe.Field{
		{Key: "duration_ms", Value: duration.Milliseconds()},
		{Key: "cache_hit", Value: cacheHit},
		{Key: "rate_limited", Value: rateLimited},
	}
	switch {
	case err == nil:
		logger.Info(ctx, "operation completed", fields...)
	case rateLimited:
		logger.Warn(ctx, "operation rate limited", fields...)
	default:
		logger.Error(ctx, "operation failed", append(fields, observe.Field{Key: "error", Value: err.Error()})...)
	}
}
