package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/boomerhub/boomerhub/internal/infrastructure/scheduler"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

const sweepTimeout = time.Minute

type windowEntry struct {
	count    int
	resetsAt time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. Expired windows are
// evicted by Sweep, which Start schedules every window.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time
	logger logger.Interface

	mu      sync.Mutex
	entries map[string]*windowEntry

	lifecycleMu sync.Mutex
	scheduler   *scheduler.SchedulerManager
}

// MemoryLimiterOption customizes a MemoryLimiter.
type MemoryLimiterOption func(*MemoryLimiter)

// WithNow replaces the limiter's clock.
func WithNow(now func() time.Time) MemoryLimiterOption {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// NewMemoryLimiter allows limit requests per key in each window.
func NewMemoryLimiter(limit int, window time.Duration, log logger.Interface, opts ...MemoryLimiterOption) (*MemoryLimiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", window)
	}

	l := &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		logger:  log,
		entries: make(map[string]*windowEntry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *MemoryLimiter) Consume(ctx context.Context, key string) (*Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || !now.Before(entry.resetsAt) {
		entry = &windowEntry{count: 1, resetsAt: now.Add(l.window)}
		l.entries[key] = entry
		return l.decision(key, entry), nil
	}

	if entry.count >= l.limit {
		return nil, newRateLimitError(key, l.limit, entry.resetsAt, now)
	}

	entry.count++
	return l.decision(key, entry), nil
}

func (l *MemoryLimiter) decision(key string, entry *windowEntry) *Decision {
	return &Decision{
		Key:       key,
		Count:     entry.count,
		Limit:     l.limit,
		Remaining: l.limit - entry.count,
		ResetsAt:  entry.resetsAt,
	}
}

// Sweep evicts every entry whose window has closed and returns how many were removed.
func (l *MemoryLimiter) Sweep(ctx context.Context) (int, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, entry := range l.entries {
		if !now.Before(entry.resetsAt) {
			delete(l.entries, key)
			evicted++
		}
	}
	return evicted, nil
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Start schedules Sweep every window. Calling Start on a running limiter is a no-op.
func (l *MemoryLimiter) Start(ctx context.Context) error {
	l.lifecycleMu.Lock()
	defer l.lifecycleMu.Unlock()

	if l.scheduler != nil {
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(l.logger)
	if err != nil {
		return fmt.Errorf("failed to create sweep scheduler: %w", err)
	}
	if err := manager.RegisterIntervalJob("ratelimit-sweep", l.window, sweepTimeout, scheduler.BatchJobFunc(l.Sweep)); err != nil {
		return fmt.Errorf("failed to register sweep job: %w", err)
	}
	manager.Start()
	l.scheduler = manager

	return nil
}

// Stop tears down the sweep scheduler. It is safe to call more than once.
func (l *MemoryLimiter) Stop() error {
	l.lifecycleMu.Lock()
	defer l.lifecycleMu.Unlock()

	if l.scheduler == nil {
		return nil
	}
	err := l.scheduler.Stop()
	l.scheduler = nil
	return err
}
