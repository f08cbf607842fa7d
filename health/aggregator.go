package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds CheckAll when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Aggregator runs a set of checkers together.
type Aggregator struct {
	timeout  time.Duration
	mu       sync.RWMutex
	checkers []Checker
}

// NewAggregator creates an Aggregator. A timeout <= 0 uses DefaultTimeout.
func NewAggregator(timeout ...time.Duration) *Aggregator {
	a := &Aggregator{timeout: DefaultTimeout}
	if len(timeout) > 0 && timeout[0] > 0 {
		a.timeout = timeout[0]
	}
	return a
}

// Register adds c, replacing any checker with the same name.
func (a *Aggregator) Register(c Checker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, existing := range a.checkers {
		if existing.Name() == c.Name() {
			a.checkers[i] = c
			return
		}
	}
	a.checkers = append(a.checkers, c)
}

// Names returns checker names in registration order.
func (a *Aggregator) Names() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, len(a.checkers))
	for i, c := range a.checkers {
		names[i] = c.Name()
	}
	return names
}

// CheckAll runs every checker in parallel and returns results by name.
// A checker still running at the timeout is reported Unhealthy.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := append([]Checker(nil), a.checkers...)
	a.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	results := make([]Result, len(checkers))
	var g errgroup.Group
	for i, c := range checkers {
		g.Go(func() error {
			results[i] = runCheck(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]Result, len(checkers))
	for i, c := range checkers {
		out[c.Name()] = results[i]
	}
	return out
}

// OverallStatus returns the worst status in results, Healthy when empty.
func OverallStatus(results map[string]Result) Status {
	overall := StatusHealthy
	for _, r := range results {
		if r.Status > overall {
			overall = r.Status
		}
	}
	return overall
}

func runCheck(ctx context.Context, c Checker) Result {
	start := time.Now()
	done := make(chan Result, 1)
	go func() {
		done <- c.Check(ctx)
	}()

	var r Result
	select {
	case r = <-done:
	case <-ctx.Done():
		r = Unhealthy("check timed out", ErrCheckTimeout)
	}
	r.Duration = time.Since(start)
	if r.Timestamp.IsZero() {
		r.Timestamp = start
	}
	return r
}
