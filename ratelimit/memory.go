package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend builds in-process sliding-log limiters. Quotas are not
// shared between processes.
type MemoryBackend struct {
	opts options
}

// NewMemoryBackend creates a memory backend.
func NewMemoryBackend(opts ...Option) *MemoryBackend {
	return &MemoryBackend{opts: applyOptions(opts)}
}

// NewLimiter implements Backend.
func (b *MemoryBackend) NewLimiter(cfg Config) (Limiter, error) {
	window, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	return &memoryLimiter{
		limit:  cfg.Limit,
		window: window,
		now:    b.opts.now,
		logs:   make(map[string][]int64),
	}, nil
}

// memoryLimiter keeps accepted request times in milliseconds per identifier.
type memoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	logs      map[string][]int64
	lastSweep int64
}

func (l *memoryLimiter) Limit(ctx context.Context, identifier string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nowMs := l.now().UnixMilli()
	windowMs := l.window.Milliseconds()

	l.mu.Lock()
	defer l.mu.Unlock()

	log := l.logs[identifier]
	cut := 0
	for cut < len(log) && log[cut] <= nowMs-windowMs {
		cut++
	}
	log = log[cut:]

	success := len(log) < l.limit
	if success {
		log = append(log, nowMs)
	}

	l.logs[identifier] = log
	l.sweep(nowMs, windowMs)

	return &Result{
		Success:   success,
		Limit:     l.limit,
		Remaining: max(0, l.limit-len(log)),
		Reset:     resetSeconds(log[0], windowMs),
	}, nil
}

// sweep drops identifiers whose newest entry has left the window. It runs at
// most once per window. l.mu must be held.
func (l *memoryLimiter) sweep(nowMs, windowMs int64) {
	if nowMs-l.lastSweep < windowMs {
		return
	}
	l.lastSweep = nowMs
	for id, log := range l.logs {
		if log[len(log)-1] <= nowMs-windowMs {
			delete(l.logs, id)
		}
	}
}

// tracked returns the number of identifiers with a log.
func (l *memoryLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.logs)
}

var _ Backend = (*MemoryBackend)(nil)
