package usage

import (
	"time"

	"github.com/boomerhub/boomerhub/internal/shared/biztime"
)

// Status is the answer to "may this identity perform one more invocation today?"
type Status struct {
	Identity       Identity
	HasRemaining   bool
	RemainingCount int
	Limit          int
	Used           int64
	WindowStart    *time.Time
	// ResetsAt is set for users only; guest counters do not roll over.
	ResetsAt *time.Time
}

func fullStatus(identity Identity, limit int, now time.Time) *Status {
	return &Status{
		Identity:       identity,
		HasRemaining:   true,
		RemainingCount: limit,
		Limit:          limit,
		ResetsAt:       resetsAt(identity, now),
	}
}

func statusOf(record *UsageRecord, identity Identity, limit int) *Status {
	windowStart := record.WindowStart()
	return &Status{
		Identity:       identity,
		HasRemaining:   record.HasRemaining(limit),
		RemainingCount: record.Remaining(limit),
		Limit:          limit,
		Used:           record.Count(),
		WindowStart:    &windowStart,
		ResetsAt:       resetsAt(identity, windowStart),
	}
}

func resetsAt(identity Identity, from time.Time) *time.Time {
	if !identity.IsUser() {
		return nil
	}
	next := biztime.StartOfNextDayUTC(from)
	return &next
}
