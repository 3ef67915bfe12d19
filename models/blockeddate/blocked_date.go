package blockeddate

import (
	"time"
)

// BlockedDate marks a calendar day the surveyor is unavailable (off-day).
// A date cannot be blocked while it carries a scheduled booking; that check
// lives in services/availability, which owns both date sets.
type BlockedDate struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	SurveyorID uint      `gorm:"not null;index" json:"surveyor_id"`
	Date       time.Time `gorm:"type:date;not null;index" json:"date"`
	Reason     *string   `gorm:"type:varchar(255)" json:"reason,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BlockedDate model
func (BlockedDate) TableName() string {
	return "blocked_dates"
}
