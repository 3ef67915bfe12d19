package report

import (
	bookingModel "survey-booking/models/booking"
	clientModel "survey-booking/models/client"
	"time"
)

// Report is the written outcome of a survey: land-registry location fields
// (mouza, plot) plus the measured area in the three regional units.
type Report struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ClientID uint               `gorm:"not null;index" json:"client_id"`
	Client   clientModel.Client `gorm:"foreignKey:ClientID" json:"client"`

	BookingID *uint                 `gorm:"index" json:"booking_id,omitempty"`
	Booking   *bookingModel.Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`

	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	Mouza      string `gorm:"type:varchar(255);not null" json:"mouza"`
	PlotNumber string `gorm:"type:varchar(100);not null" json:"plot_number"`

	AreaSqFt    float64 `gorm:"type:double precision;not null" json:"area_sq_ft"`
	AreaKatha   float64 `gorm:"type:double precision;not null" json:"area_katha"`
	AreaDecimal float64 `gorm:"type:double precision;not null" json:"area_decimal"`

	Notes   *string `gorm:"type:text" json:"notes,omitempty"`
	FileURL *string `gorm:"type:varchar(2048)" json:"file_url,omitempty"`

	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
