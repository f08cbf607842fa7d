package redisconn

import "errors"

var (
	ErrRedisNotConfigured = errors.New("redisconn: REDIS_URL is not set")
	ErrInvalidURL         = errors.New("redisconn: failed to parse redis connection string")
	ErrRedisNotReady      = errors.New("redisconn: redis did not become ready in time")
	ErrHealthcheckFailed  = errors.New("redisconn: healthcheck failed")
)
