package usage

import (
	"context"
	"time"
)

// Store defines the persistence collaborator of the quota tracker.
type Store interface {
	// Get returns the record for identity, or ErrRecordNotFound. Guest and user
	// records live in separate key spaces, so a key shared by a guest and a user
	// addresses two different records.
	Get(ctx context.Context, identity Identity) (*UsageRecord, error)

	// Set creates or fully overwrites a record
	Set(ctx context.Context, record *UsageRecord) error

	// Increment atomically adds delta to the count, creating the record with a
	// window starting at now when absent, and returns the updated record
	Increment(ctx context.Context, identity Identity, delta int64, now time.Time) (*UsageRecord, error)
}
