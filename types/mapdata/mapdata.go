package mapdata

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type MapDataCreateRequest struct {
	BookingID  *uint    `json:"booking_id" validate:"omitempty"`
	Name       string   `json:"name" validate:"required,min=1,max=255"`
	GeoJSON    string   `json:"geo_json" validate:"required"`
	AreaSqM    *float64 `json:"area_sq_m" validate:"omitempty,gte=0"`
	PerimeterM *float64 `json:"perimeter_m" validate:"omitempty,gte=0"`
}

func (req *MapDataCreateRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return err
	}
	// The payload is stored as-is, but it has to at least be valid JSON.
	if !json.Valid([]byte(req.GeoJSON)) {
		return fmt.Errorf("geo_json is not valid JSON")
	}
	return nil
}
