package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type AddressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

func (req *AddressRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Street, validation.Required),
		validation.Field(&req.Number, validation.Required),
		validation.Field(&req.PostalCode, validation.Required),
		validation.Field(&req.City, validation.Required),
	)
}

type EnrollStudentRequest struct {
	Name        string         `json:"name"`
	Address     AddressRequest `json:"address"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Scholarship bool           `json:"scholarship"`
	Course      string         `json:"course"`
}

func (req *EnrollStudentRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.Course, validation.Required),
	); err != nil {
		return err
	}

	return req.Address.Validate()
}

type UpdateStudentRequest struct {
	Name        string         `json:"name"`
	Address     AddressRequest `json:"address"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Scholarship bool           `json:"scholarship"`
	Course      string         `json:"course"`
}

func (req *UpdateStudentRequest) Validate() error {
	return (*EnrollStudentRequest)(req).Validate()
}
