package usage

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store keyed by Identity.String(). Increment is
// atomic under its lock.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]UsageRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]UsageRecord),
	}
}

func (s *MemoryStore) Get(ctx context.Context, identity Identity) (*UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[identity.String()]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &record, nil
}

func (s *MemoryStore) Set(ctx context.Context, record *UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Identity().String()] = *record
	return nil
}

func (s *MemoryStore) Increment(ctx context.Context, identity Identity, delta int64, now time.Time) (*UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[identity.String()]
	if !ok {
		record = *NewUsageRecord(identity, now)
	}
	record.Increment(delta, now)
	s.records[identity.String()] = record

	out := record
	return &out, nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
