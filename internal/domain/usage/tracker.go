package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/boomerhub/boomerhub/internal/shared/biztime"
)

// Tracker enforces the per-identity daily cap on top of a Store.
//
// Check and record are separate calls and nothing ties them together: two
// concurrent requests for one identity may both pass CheckUsage before either
// records, so an identity can overshoot its cap by up to (concurrent requests - 1).
// The count itself never loses increments as long as the Store's Increment is atomic.
type Tracker struct {
	store  Store
	limits Limits
	now    func() time.Time
}

// TrackerOption customizes a Tracker.
type TrackerOption func(*Tracker)

// WithClock replaces the time source.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

// NewTracker creates a Tracker. limits must be valid.
func NewTracker(store Store, limits Limits, opts ...TrackerOption) (*Tracker, error) {
	if store == nil {
		return nil, errors.New("usage store is required")
	}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	t := &Tracker{
		store:  store,
		limits: limits,
		now:    biztime.NowUTC,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Limits returns the caps in effect.
func (t *Tracker) Limits() Limits {
	return t.limits
}

// CheckUsage reports the remaining quota for identity. A registered user whose
// window began on an earlier business day is reset and the reset is persisted.
func (t *Tracker) CheckUsage(ctx context.Context, identity Identity) (*Status, error) {
	if identity.IsZero() {
		return nil, ErrEmptyIdentity
	}
	now := t.now()
	limit := t.limits.CapFor(identity.Type())

	record, err := t.store.Get(ctx, identity)
	if errors.Is(err, ErrRecordNotFound) {
		return fullStatus(identity, limit, now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load usage record: %w", err)
	}

	if identity.IsUser() && record.NeedsDailyReset(now) {
		if err := t.resetRecord(ctx, record, now); err != nil {
			return nil, err
		}
	}

	return statusOf(record, identity, limit), nil
}

// RecordUsage charges one invocation to identity. It does not enforce the cap.
func (t *Tracker) RecordUsage(ctx context.Context, identity Identity) (*Status, error) {
	if identity.IsZero() {
		return nil, ErrEmptyIdentity
	}
	now := t.now()

	if identity.IsUser() {
		record, err := t.store.Get(ctx, identity)
		switch {
		case errors.Is(err, ErrRecordNotFound):
		case err != nil:
			return nil, fmt.Errorf("failed to load usage record: %w", err)
		case record.NeedsDailyReset(now):
			if err := t.resetRecord(ctx, record, now); err != nil {
				return nil, err
			}
		}
	}

	record, err := t.store.Increment(ctx, identity, 1, now)
	if err != nil {
		return nil, fmt.Errorf("failed to increment usage: %w", err)
	}

	return statusOf(record, identity, t.limits.CapFor(identity.Type())), nil
}

// ConsumeUsage checks the quota and, when some is left, records one invocation.
// It returns ErrQuotaExceeded together with the exhausted status otherwise.
func (t *Tracker) ConsumeUsage(ctx context.Context, identity Identity) (*Status, error) {
	status, err := t.CheckUsage(ctx, identity)
	if err != nil {
		return nil, err
	}
	if !status.HasRemaining {
		return status, ErrQuotaExceeded
	}
	return t.RecordUsage(ctx, identity)
}

// ResetUsage zeroes the identity's count under a fresh window.
func (t *Tracker) ResetUsage(ctx context.Context, identity Identity) (*Status, error) {
	if identity.IsZero() {
		return nil, ErrEmptyIdentity
	}
	now := t.now()

	record, err := t.store.Get(ctx, identity)
	if errors.Is(err, ErrRecordNotFound) {
		record = NewUsageRecord(identity, now)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load usage record: %w", err)
	}

	if err := t.resetRecord(ctx, record, now); err != nil {
		return nil, err
	}

	return statusOf(record, identity, t.limits.CapFor(identity.Type())), nil
}

func (t *Tracker) resetRecord(ctx context.Context, record *UsageRecord, now time.Time) error {
	record.ResetWindow(now)
	if err := t.store.Set(ctx, record); err != nil {
		return fmt.Errorf("failed to reset usage record: %w", err)
	}
	return nil
}
