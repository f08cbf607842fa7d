package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be parsed.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrEnvFile is returned when an explicitly named .env file cannot be read.
	ErrEnvFile = errors.New("config: failed to load env file")

	// ErrRedisURL is returned when REDIS_URL references an unset variable.
	ErrRedisURL = errors.New("config: failed to expand REDIS_URL")

	// ErrJWTSecret is returned when JWT_SECRET references an unset variable.
	ErrJWTSecret = errors.New("config: failed to expand JWT_SECRET")
)
