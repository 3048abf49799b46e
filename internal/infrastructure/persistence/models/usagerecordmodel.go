package models

import (
	"time"
)

// UsageRecordModel represents the database persistence model for per-identity AI usage.
// The primary key is (identity_type, identity) so guest and user records never share a row.
type UsageRecordModel struct {
	IdentityType string    `gorm:"primaryKey;size:16"`
	Identity     string    `gorm:"primaryKey;size:191"`
	RequestCount int64     `gorm:"not null;default:0"`
	WindowStart  time.Time `gorm:"not null;index:idx_usage_records_window_start"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UsageRecordModel) TableName() string {
	return "usage_records"
}
