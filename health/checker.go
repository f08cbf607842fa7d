package health

import (
	"context"
	"time"
)

// Status represents the health status of a component.
type Status int

const (
	// StatusHealthy indicates the component is functioning normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the component is missing or failing but the
	// service still works without it.
	StatusDegraded
	// StatusUnhealthy indicates the service cannot work.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a health check.
type Result struct {
	Status    Status
	Message   string
	Error     error
	Duration  time.Duration
	Timestamp time.Time
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message, Timestamp: time.Now()}
}

// Degraded creates a degraded result.
func Degraded(message string, err error) Result {
	return Result{Status: StatusDegraded, Message: message, Error: err, Timestamp: time.Now()}
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err, Timestamp: time.Now()}
}

// Checker is the interface for health checks.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

type checkerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc adapts fn into a Checker.
func NewCheckerFunc(name string, fn func(context.Context) Result) Checker {
	return &checkerFunc{name: name, fn: fn}
}

func (f *checkerFunc) Name() string { return f.name }

func (f *checkerFunc) Check(ctx context.Context) Result { return f.fn(ctx) }
