package calculation

import "github.com/go-playground/validator/v10"

// CalculationRequest carries the four side lengths in feet. The derived
// areas are always computed server-side, never trusted from the client.
type CalculationRequest struct {
	BookingID *uint   `json:"booking_id" validate:"omitempty"`
	NorthFt   float64 `json:"north_ft" validate:"required,gt=0"`
	SouthFt   float64 `json:"south_ft" validate:"required,gt=0"`
	EastFt    float64 `json:"east_ft" validate:"required,gt=0"`
	WestFt    float64 `json:"west_ft" validate:"required,gt=0"`
}

func (req *CalculationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
