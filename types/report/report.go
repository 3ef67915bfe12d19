package report

import "github.com/go-playground/validator/v10"

type ReportCreateRequest struct {
	ClientID    uint    `json:"client_id" validate:"required"`
	BookingID   *uint   `json:"booking_id" validate:"omitempty"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Content     string  `json:"content" validate:"required"`
	Mouza       string  `json:"mouza" validate:"required,min=1,max=255"`
	PlotNumber  string  `json:"plot_number" validate:"required,min=1,max=100"`
	AreaSqFt    float64 `json:"area_sq_ft" validate:"required,gt=0"`
	AreaKatha   float64 `json:"area_katha" validate:"required,gt=0"`
	AreaDecimal float64 `json:"area_decimal" validate:"required,gt=0"`
	Notes       string  `json:"notes" validate:"omitempty"`
	FileURL     string  `json:"file_url" validate:"omitempty,url"`
}

func (req *ReportCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type ReportUpdateRequest struct {
	Title       string   `json:"title" validate:"omitempty,min=1,max=255"`
	Content     string   `json:"content" validate:"omitempty"`
	Mouza       string   `json:"mouza" validate:"omitempty,min=1,max=255"`
	PlotNumber  string   `json:"plot_number" validate:"omitempty,min=1,max=100"`
	AreaSqFt    *float64 `json:"area_sq_ft" validate:"omitempty,gt=0"`
	AreaKatha   *float64 `json:"area_katha" validate:"omitempty,gt=0"`
	AreaDecimal *float64 `json:"area_decimal" validate:"omitempty,gt=0"`
	Notes       string   `json:"notes" validate:"omitempty"`
	FileURL     string   `json:"file_url" validate:"omitempty,url"`
}

func (req *ReportUpdateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
