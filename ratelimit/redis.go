package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingLogScript keeps one sorted-set member per accepted request, scored
// by its time in milliseconds.
//
// KEYS[1] = <namespace>:<identifier>
// ARGV    = now_ms, window_ms, limit, member
// Reply   = {success, limit, remaining, reset_ms}
var slidingLogScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
local success = 0
if count < limit then
	redis.call('ZADD', key, now, ARGV[4])
	count = count + 1
	success = 1
end

redis.call('PEXPIRE', key, window)

local reset = now + window
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if oldest[2] then
	reset = tonumber(oldest[2]) + window
end

local remaining = limit - count
if remaining < 0 then
	remaining = 0
end

return {success, limit, remaining, reset}
`)

// RedisBackend builds sliding-log limiters stored in Redis sorted sets.
// Quotas are shared by every process using the same Redis.
type RedisBackend struct {
	client redis.UniversalClient
	opts   options
}

// NewRedisBackend creates a Redis backend.
func NewRedisBackend(client redis.UniversalClient, opts ...Option) *RedisBackend {
	return &RedisBackend{client: client, opts: applyOptions(opts)}
}

// NewLimiter implements Backend.
func (b *RedisBackend) NewLimiter(cfg Config) (Limiter, error) {
	window, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	return &redisLimiter{
		client:    b.client,
		namespace: cfg.Namespace,
		limit:     cfg.Limit,
		window:    window,
		now:       b.opts.now,
	}, nil
}

// Ping checks that Redis is reachable.
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

type redisLimiter struct {
	client    redis.UniversalClient
	namespace string
	limit     int
	window    time.Duration
	now       func() time.Time
}

func (l *redisLimiter) Limit(ctx context.Context, identifier string) (*Result, error) {
	nowMs := l.now().UnixMilli()
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	reply, err := slidingLogScript.Run(ctx, l.client,
		[]string{l.namespace + ":" + identifier},
		nowMs, l.window.Milliseconds(), l.limit, member,
	).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return parseReply(reply)
}

// parseReply decodes {success, limit, remaining, reset_ms}.
func parseReply(reply any) (*Result, error) {
	values, ok := reply.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: reply is %T, want array", ErrMalformedResult, reply)
	}
	if len(values) != 4 {
		return nil, fmt.Errorf("%w: reply has %d elements, want 4", ErrMalformedResult, len(values))
	}

	ints := make([]int64, len(values))
	for i, v := range values {
		n, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T, want integer", ErrMalformedResult, i, v)
		}
		ints[i] = n
	}

	if ints[0] != 0 && ints[0] != 1 {
		return nil, fmt.Errorf("%w: success flag %d", ErrMalformedResult, ints[0])
	}

	res := &Result{
		Success:   ints[0] == 1,
		Limit:     int(ints[1]),
		Remaining: int(ints[2]),
		Reset:     ceilSeconds(ints[3]),
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

var _ Backend = (*RedisBackend)(nil)
