package client

import "github.com/go-playground/validator/v10"

type ClientCreateRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"required,min=6,max=20"`
	Address string `json:"address" validate:"omitempty"`
}

func (req *ClientCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type ClientUpdateRequest struct {
	Name    string `json:"name" validate:"omitempty,min=1,max=255"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,min=6,max=20"`
	Address string `json:"address" validate:"omitempty"`
}

func (req *ClientUpdateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
