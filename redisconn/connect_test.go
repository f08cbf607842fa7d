package redisconn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestConnect_NotConfigured(t *testing.T) {
	_, err := Connect(context.Background(), Config{})
	if !errors.Is(err, ErrRedisNotConfigured) {
		t.Fatalf("Connect() error = %v, want ErrRedisNotConfigured", err)
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), Config{URL: "http://example.com"})
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("Connect() error = %v, want ErrInvalidURL", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	cfg := Config{
		URL:            "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: 2 * time.Second,
	}
	start := time.Now()
	_, err := Connect(context.Background(), cfg)
	if !errors.Is(err, ErrRedisNotReady) {
		t.Fatalf("Connect() error = %v, want ErrRedisNotReady", err)
	}
	if time.Since(start) < cfg.RetryInterval {
		t.Error("Connect() did not wait between attempts")
	}
}

func TestConnect_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, Config{URL: "redis://127.0.0.1:1/0", RetryAttempts: 5, RetryInterval: time.Hour})
	if !errors.Is(err, ErrRedisNotReady) {
		t.Fatalf("Connect() error = %v, want ErrRedisNotReady", err)
	}
}

func TestHealthcheck_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer client.Close()

	err := Healthcheck(client)(context.Background())
	if !errors.Is(err, ErrHealthcheckFailed) {
		t.Fatalf("Healthcheck() error = %v, want ErrHealthcheckFailed", err)
	}
}

func TestConfig_Enabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Error("empty config reported enabled")
	}
	if !(Config{URL: "redis://localhost:6379"}).Enabled() {
		t.Error("config with URL reported disabled")
	}
}
