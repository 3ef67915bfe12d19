package calculation

import (
	bookingModel "survey-booking/models/booking"
	"time"
)

// Calculation stores one land-area calculator run: four side lengths in
// feet and the derived area in the three regional units.
type Calculation struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Optional link back to the survey the measurement was taken for
	BookingID *uint                 `gorm:"index" json:"booking_id,omitempty"`
	Booking   *bookingModel.Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`

	NorthFt float64 `gorm:"type:numeric(12,2);not null" json:"north_ft"`
	SouthFt float64 `gorm:"type:numeric(12,2);not null" json:"south_ft"`
	EastFt  float64 `gorm:"type:numeric(12,2);not null" json:"east_ft"`
	WestFt  float64 `gorm:"type:numeric(12,2);not null" json:"west_ft"`

	AreaSqFt    float64 `gorm:"type:double precision;not null" json:"area_sq_ft"`
	AreaKatha   float64 `gorm:"type:double precision;not null" json:"area_katha"`
	AreaDecimal float64 `gorm:"type:double precision;not null" json:"area_decimal"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
