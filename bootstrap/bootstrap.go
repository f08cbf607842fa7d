package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonwraymond/toolguard/auth"
	"github.com/jonwraymond/toolguard/cache"
	"github.com/jonwraymond/toolguard/config"
	"github.com/jonwraymond/toolguard/guard"
	"github.com/jonwraymond/toolguard/health"
	"github.com/jonwraymond/toolguard/observe"
	"github.com/jonwraymond/toolguard/ratelimit"
	"github.com/jonwraymond/toolguard/redisconn"
)

// Stack is the wired runtime.
type Stack struct {
	Config      config.Config
	Observer    observe.Observer
	Instruments observe.Instruments

	// Redis is nil when running without a backend.
	Redis *redis.Client

	Guard  *guard.Guard
	Health *health.Aggregator
}

// New builds a Stack. Only telemetry setup errors are returned.
func New(ctx context.Context, cfg config.Config) (*Stack, error) {
	obs, err := observe.NewObserver(ctx, cfg.Observe())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: observer: %w", err)
	}
	inst, err := observe.NewInstruments(obs)
	if err != nil {
		_ = obs.Shutdown(ctx)
		return nil, fmt.Errorf("bootstrap: instruments: %w", err)
	}

	s := &Stack{Config: cfg, Observer: obs, Instruments: inst}

	client, err := redisconn.Connect(ctx, cfg.Redis)
	switch {
	case errors.Is(err, redisconn.ErrRedisNotConfigured):
		inst.Logger.Warn(ctx, "redis not configured, guardrails disabled")
	case err != nil:
		inst.Logger.Warn(ctx, "redis unavailable, guardrails disabled",
			observe.Field{Key: "error", Value: err.Error()})
	default:
		s.Redis = client
	}

	var (
		store   cache.Store
		backend ratelimit.Backend
		ping    func(context.Context) error
	)
	if s.Redis != nil {
		store = cache.NewRedisStore(s.Redis)
		backend = ratelimit.NewRedisBackend(s.Redis)
		ping = redisconn.Healthcheck(s.Redis)
	}

	opts := []guard.Option{
		guard.WithInstruments(inst),
		guard.WithCacheGateway(cache.NewGateway(store, cache.WithRecorder(inst.Recorder))),
		guard.WithRateLimitGateway(ratelimit.NewGateway(
			ratelimit.NewRegistry(backend),
			ratelimit.WithRecorder(inst.Recorder),
		)),
	}
	if cfg.Auth.Enabled() {
		opts = append(opts, guard.WithAuthenticator(auth.NewJWTAuthenticator(auth.JWTConfig{
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
			Leeway:   cfg.Auth.Leeway,
		}, auth.StaticKey([]byte(cfg.Auth.Secret)))))
	}
	s.Guard = guard.New(opts...)

	s.Health = health.NewAggregator()
	s.Health.Register(health.NewBackendChecker("redis", ping))

	return s, nil
}

// Degraded reports whether the stack runs without guardrail backends.
func (s *Stack) Degraded() bool {
	return s.Redis == nil
}

// Close flushes telemetry and closes the Redis client.
func (s *Stack) Close(ctx context.Context) error {
	var errs []error
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if s.Observer != nil {
		if err := s.Observer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
