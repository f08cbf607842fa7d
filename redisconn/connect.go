package redisconn

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a client for cfg.URL and pings it until it answers.
//
// It makes at most cfg.RetryAttempts attempts (at least one) spaced by
// cfg.RetryInterval, all bounded by cfg.ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrRedisNotConfigured
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for attempt := range attempts {
		client := redis.NewClient(opts)
		lastErr = client.Ping(ctx).Err()
		if lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if attempt == attempts-1 {
			break
		}
		timer := time.NewTimer(cfg.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-timer.C:
		}
	}
	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

// Healthcheck returns a ping func suitable for health.NewBackendChecker.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
