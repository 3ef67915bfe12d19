package booking

import (
	clientModel "survey-booking/models/client"
	"survey-booking/models/user"
	"time"
)

// Booking represents a survey appointment for a client.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for the surveyor who owns the appointment
	SurveyorID uint      `gorm:"not null;index" json:"surveyor_id"`
	Surveyor   user.User `gorm:"foreignKey:SurveyorID" json:"surveyor"`

	// Foreign key for the client the survey is performed for
	ClientID uint               `gorm:"not null;index" json:"client_id"`
	Client   clientModel.Client `gorm:"foreignKey:ClientID" json:"client"`

	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// Appointment date; time-of-day is optional and kept separately so the
	// calendar can compare at day granularity.
	ScheduledDate time.Time `gorm:"type:date;not null;index" json:"scheduled_date"`
	ScheduledTime *string   `gorm:"type:varchar(10)" json:"scheduled_time,omitempty"`

	Status BookingStatus `gorm:"size:20;not null;default:pending;index" json:"status"`

	PropertyAddress string   `gorm:"type:text;not null" json:"property_address"`
	Latitude        *float64 `gorm:"type:double precision" json:"latitude,omitempty"`
	Longitude       *float64 `gorm:"type:double precision" json:"longitude,omitempty"`

	AmountReceived float64 `gorm:"type:numeric(12,2);default:0" json:"amount_received"`
	AmountDue      float64 `gorm:"type:numeric(12,2);default:0" json:"amount_due"`
	PaymentNote    *string `gorm:"type:text" json:"payment_note,omitempty"`

	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
