package guard

import (
	"github.com/jonwraymond/toolguard/cache"
	"github.com/jonwraymond/toolguard/ratelimit"
)

// Telemetry configures the span of a guarded call.
type Telemetry[I any] struct {
	// Name overrides the operation name in the span name.
	Name string

	// Attributes returns extra span attributes for an input.
	Attributes func(I) map[string]any

	// RedactKeys lists attribute keys whose values are masked.
	RedactKeys []string

	// Workflow tags the span when the call context has no workflow.
	Workflow string
}

// Config selects the guardrails of one operation. A nil block disables that
// guardrail.
type Config[I, O any] struct {
	Cache     *cache.Spec[I, O]
	RateLimit *ratelimit.Spec[I]
	Telemetry *Telemetry[I]
}

// ConfigOption sets one guardrail block.
type ConfigOption[I, O any] func(*Config[I, O])

// NewConfig composes a Config from options.
func NewConfig[I, O any](opts ...ConfigOption[I, O]) Config[I, O] {
	var cfg Config[I, O]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithCache enables response caching.
func WithCache[I, O any](spec *cache.Spec[I, O]) ConfigOption[I, O] {
	return func(c *Config[I, O]) {
		c.Cache = spec
	}
}

// WithRateLimit enables rate limiting.
func WithRateLimit[I, O any](spec *ratelimit.Spec[I]) ConfigOption[I, O] {
	return func(c *Config[I, O]) {
		c.RateLimit = spec
	}
}

// WithTelemetry customises the span.
func WithTelemetry[I, O any](t *Telemetry[I]) ConfigOption[I, O] {
	return func(c *Config[I, O]) {
		c.Telemetry = t
	}
}
