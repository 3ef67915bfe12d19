package mapdata

import (
	bookingModel "survey-booking/models/booking"
	"time"
)

// MapData stores a drawn map feature as raw GeoJSON with the area and
// perimeter the map tool computed client-side. The payload is validated
// as JSON at the boundary but otherwise persisted as-is.
type MapData struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID *uint                 `gorm:"index" json:"booking_id,omitempty"`
	Booking   *bookingModel.Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`

	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	GeoJSON string `gorm:"type:jsonb;not null" json:"geo_json"`

	AreaSqM    *float64 `gorm:"type:double precision" json:"area_sq_m,omitempty"`
	PerimeterM *float64 `gorm:"type:double precision" json:"perimeter_m,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the MapData model
func (MapData) TableName() string {
	return "map_data"
}
