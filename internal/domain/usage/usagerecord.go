package usage

import (
	"time"

	"github.com/boomerhub/boomerhub/internal/shared/biztime"
)

// UsageRecord counts the AI invocations charged to one identity in its current window.
type UsageRecord struct {
	identity    Identity
	count       int64
	windowStart time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUsageRecord creates an empty record whose window starts at now.
func NewUsageRecord(identity Identity, now time.Time) *UsageRecord {
	now = now.UTC()
	return &UsageRecord{
		identity:    identity,
		windowStart: now,
		createdAt:   now,
		updatedAt:   now,
	}
}

// ReconstructUsageRecord reconstructs a UsageRecord from persistence layer.
// Negative counts are clamped to zero.
func ReconstructUsageRecord(
	identity Identity,
	count int64,
	windowStart time.Time,
	createdAt, updatedAt time.Time,
) *UsageRecord {
	if count < 0 {
		count = 0
	}
	return &UsageRecord{
		identity:    identity,
		count:       count,
		windowStart: windowStart.UTC(),
		createdAt:   createdAt.UTC(),
		updatedAt:   updatedAt.UTC(),
	}
}

// Getters
func (r *UsageRecord) Identity() Identity     { return r.identity }
func (r *UsageRecord) Count() int64           { return r.count }
func (r *UsageRecord) WindowStart() time.Time { return r.windowStart }
func (r *UsageRecord) CreatedAt() time.Time   { return r.createdAt }
func (r *UsageRecord) UpdatedAt() time.Time   { return r.updatedAt }

// NeedsDailyReset reports whether a registered user's window began on an earlier
// business day than now. Guest windows never roll over.
func (r *UsageRecord) NeedsDailyReset(now time.Time) bool {
	if !r.identity.IsUser() {
		return false
	}
	return !biztime.SameDay(r.windowStart, now) && r.windowStart.Before(now)
}

// ResetWindow zeroes the count and starts a fresh window at now.
func (r *UsageRecord) ResetWindow(now time.Time) {
	now = now.UTC()
	r.count = 0
	r.windowStart = now
	r.updatedAt = now
}

// Increment adds delta to the count. Negative deltas never take it below zero.
func (r *UsageRecord) Increment(delta int64, now time.Time) {
	r.count += delta
	if r.count < 0 {
		r.count = 0
	}
	r.updatedAt = now.UTC()
}

// Remaining returns how many invocations are left under limit.
func (r *UsageRecord) Remaining(limit int) int {
	left := int64(limit) - r.count
	if left < 0 {
		return 0
	}
	return int(left)
}

// HasRemaining reports whether count is still below limit.
func (r *UsageRecord) HasRemaining(limit int) bool {
	return r.count < int64(limit)
}
