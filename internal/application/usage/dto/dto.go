package dto

import (
	"time"

	"github.com/boomerhub/boomerhub/internal/domain/usage"
)

// IdentityRequest names the identity a usage operation applies to
type IdentityRequest struct {
	IdentityKey  string `json:"identity" validate:"required,max=191"`
	IdentityType string `json:"identity_type" validate:"required,oneof=guest user"`
}

// UsageStatusResponse is the quota answer for one identity
type UsageStatusResponse struct {
	Identity       string     `json:"identity"`
	IdentityType   string     `json:"identity_type"`
	HasRemaining   bool       `json:"has_remaining"`
	RemainingCount int        `json:"remaining_count"`
	Limit          int        `json:"limit"`
	Used           int64      `json:"used"`
	WindowStart    *time.Time `json:"window_start,omitempty"`
	ResetsAt       *time.Time `json:"resets_at,omitempty"`
}

// ToUsageStatusResponse converts a domain status to its response DTO
func ToUsageStatusResponse(status *usage.Status) *UsageStatusResponse {
	if status == nil {
		return nil
	}
	return &UsageStatusResponse{
		Identity:       status.Identity.Key(),
		IdentityType:   status.Identity.Type().String(),
		HasRemaining:   status.HasRemaining,
		RemainingCount: status.RemainingCount,
		Limit:          status.Limit,
		Used:           status.Used,
		WindowStart:    status.WindowStart,
		ResetsAt:       status.ResetsAt,
	}
}

// LimitsResponse exposes the caps in effect
type LimitsResponse struct {
	GuestLimit int `json:"guest_limit"`
	UserLimit  int `json:"user_limit"`
}

// GuestIDResponse carries a freshly minted guest identifier
type GuestIDResponse struct {
	GuestID string `json:"guest_id"`
}
