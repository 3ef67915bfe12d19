package booking

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type BookingCreateRequest struct {
	SurveyorID      uint     `json:"surveyor_id" validate:"required"`
	ClientID        uint     `json:"client_id" validate:"required"`
	Title           string   `json:"title" validate:"required,min=1,max=255"`
	Description     string   `json:"description" validate:"omitempty"`
	ScheduledDate   string   `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime   string   `json:"scheduled_time" validate:"omitempty,datetime=15:04"`
	PropertyAddress string   `json:"property_address" validate:"required,min=1"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	AmountDue       float64  `json:"amount_due" validate:"omitempty,gte=0"`
}

func (req *BookingCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type BookingUpdateRequest struct {
	Title           string   `json:"title" validate:"omitempty,min=1,max=255"`
	Description     string   `json:"description" validate:"omitempty"`
	PropertyAddress string   `json:"property_address" validate:"omitempty,min=1"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	AmountDue       *float64 `json:"amount_due" validate:"omitempty,gte=0"`
}

func (req *BookingUpdateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

// StatusTransitionRequest drives approve/cancel/complete actions. Payment
// fields are only read when completing.
type StatusTransitionRequest struct {
	Status         string  `json:"status" validate:"required,oneof=scheduled completed cancelled"`
	AmountReceived float64 `json:"amount_received" validate:"omitempty,gte=0"`
	PaymentNote    string  `json:"payment_note" validate:"omitempty,max=1000"`
}

func (req *StatusTransitionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

// RescheduleRequest moves a booking to a new date/time. Confirmed mirrors
// the UI's second confirmation step; the write is refused without it.
type RescheduleRequest struct {
	ScheduledDate string `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime string `json:"scheduled_time" validate:"omitempty,datetime=15:04"`
	Confirmed     bool   `json:"confirmed"`
}

func (req *RescheduleRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return err
	}
	if !req.Confirmed {
		return fmt.Errorf("reschedule requires confirmation")
	}
	return nil
}

// ToggleBlockedDateRequest blocks or unblocks a calendar day.
type ToggleBlockedDateRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

func (req *ToggleBlockedDateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
