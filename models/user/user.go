package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// User represents an account that can sign in: admins, surveyors and clients
// with portal access.
type User struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid          string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Name          string  `gorm:"type:varchar(255);not null" json:"name"`
	Email         string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	EmailVerified bool    `gorm:"type:bool;default:false" json:"email_verified"`
	Phone         *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	PasswordHash  string  `gorm:"type:varchar(255);not null" json:"-"`
	Avatar        string  `gorm:"type:varchar(2048)" json:"avatar"`

	Permissions StringSlice `gorm:"type:json" json:"permissions"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// StringSlice stores a slice of strings as a JSON column.
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}

// HasPermission reports whether the user carries the given permission string.
func (u *User) HasPermission(perm string) bool {
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
