package client

import (
	"time"
)

// Client represents a customer of the surveying business. Clients are
// managed by admins; portal access is a separate User account.
type Client struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"type:varchar(255);not null" json:"name"`
	Email   *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone   string  `gorm:"type:varchar(20);not null" json:"phone"`
	Address *string `gorm:"type:text" json:"address,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
