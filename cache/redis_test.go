package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore_UnreachableReturnsErrors(t *testing.T) {
	s := NewRedisStore(unreachableRedis(t))
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "k"); err == nil || ok {
		t.Errorf("Get() = ok %v, err %v; want error", ok, err)
	}
	if err := s.Set(ctx, "k", []byte("v"), time.Second); err == nil {
		t.Error("Set() error = nil, want error")
	}
	if err := s.Delete(ctx, "k"); err == nil {
		t.Error("Delete() error = nil, want error")
	}
	if err := s.Ping(ctx); err == nil {
		t.Error("Ping() error = nil, want error")
	}
}

func TestGateway_RedisFailureDegradesToMiss(t *testing.T) {
	rec := &eventLog{}
	g := NewGateway(NewRedisStore(unreachableRedis(t)), WithRecorder(rec))
	spec := &Spec[string, string]{Key: func(s string) string { return s }, TTL: time.Minute}
	ctx := context.Background()

	if _, hit := Read(ctx, g, spec, "tool:op:k", "k", time.Now()); hit {
		t.Fatal("Read() hit on unreachable redis")
	}
	Write(ctx, g, spec, "tool:op:k", "k", "value")

	if got := rec.names(); len(got) != 2 || got[0] != "cache_error" || got[1] != "cache_error" {
		t.Errorf("events = %v, want [cache_error cache_error]", got)
	}
}
