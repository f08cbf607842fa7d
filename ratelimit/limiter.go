package ratelimit

import (
	"context"
	"strconv"
	"time"
)

// Limiter checks and consumes quota for identifiers under one Config.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: Limit should honor cancellation/deadlines.
//   - Errors: transport failures are returned as errors; a denied request is
//     a Result with Success=false, not an error.
type Limiter interface {
	Limit(ctx context.Context, identifier string) (*Result, error)
}

// Backend constructs limiters.
type Backend interface {
	NewLimiter(cfg Config) (Limiter, error)
}

// Config identifies one limiter instance.
type Config struct {
	Namespace string
	Limit     int
	Window    string
}

// Key returns the registry key "<namespace>:<limit>:<window>".
func (c Config) Key() string {
	return c.Namespace + ":" + strconv.Itoa(c.Limit) + ":" + c.Window
}

// validate checks the limit and parses the window.
func (c Config) validate() (time.Duration, error) {
	if c.Limit <= 0 {
		return 0, ErrInvalidLimit
	}
	return ParseWindow(c.Window)
}

// Option configures a backend.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time source used to place requests in the window.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
