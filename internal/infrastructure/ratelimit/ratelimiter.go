// Package ratelimit provides fixed-window request limiters keyed by caller identity.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrLimitExceeded is matched by every *RateLimitError.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Decision describes the state of a key's window after an admitted request.
type Decision struct {
	Key       string
	Count     int
	Limit     int
	Remaining int
	ResetsAt  time.Time
}

// Limiter admits or rejects one request for key.
type Limiter interface {
	// Consume counts one request against key's window. When the window is
	// already full it returns a *RateLimitError and does not count the request.
	Consume(ctx context.Context, key string) (*Decision, error)
}

// RateLimitError reports a full window and when it reopens.
type RateLimitError struct {
	Key        string
	Limit      int
	ResetsAt   time.Time
	RetryAfter time.Duration
}

func newRateLimitError(key string, limit int, resetsAt, now time.Time) *RateLimitError {
	retry := resetsAt.Sub(now)
	if retry < 0 {
		retry = 0
	}
	return &RateLimitError{
		Key:        key,
		Limit:      limit,
		ResetsAt:   resetsAt,
		RetryAfter: retry,
	}
}

// Minutes is the wait rounded up to whole minutes.
func (e *RateLimitError) Minutes() int {
	return int(math.Ceil(e.RetryAfter.Minutes()))
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Rate limit exceeded. Try again in %d minutes.", e.Minutes())
}

func (e *RateLimitError) Unwrap() error {
	return ErrLimitExceeded
}
