package health

import "errors"

var (
	// ErrCheckTimeout indicates a health check did not finish in time.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrBackendNotConfigured indicates a backend checker has no ping func.
	ErrBackendNotConfigured = errors.New("health: backend not configured")
)
