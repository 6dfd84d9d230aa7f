package request

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

const dayFormat = "2006-01-02"

var (
	pinExp = regexp.MustCompile(`^[0-9]{4}$`)

	errInvalidPin    = errors.New("pin must be exactly 4 digits")
	errInvalidAmount = errors.New("amount must be a positive decimal number")
	errInvalidDay    = errors.New("day must be formatted 2006-01-02")
)

type AuthenticateRequest struct {
	Pin string `json:"pin"`
}

func (req *AuthenticateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Pin, validation.Required, validation.Match(pinExp).Error(errInvalidPin.Error())),
	)
}

type BuyTicketRequest struct {
	Pin      string `json:"pin"`
	Day      string `json:"day"` // 2006-01-02
	MealTime string `json:"meal_time"`
	DishType string `json:"dish_type"`

	day time.Time
}

func (req *BuyTicketRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Pin, validation.Required, validation.Match(pinExp).Error(errInvalidPin.Error())),
		validation.Field(&req.MealTime, validation.Required, validation.In("Lunch", "Dinner")),
		validation.Field(&req.DishType, validation.Required, validation.In("Meat", "Fish", "Vegetarian")),
	); err != nil {
		return err
	}

	day, err := time.Parse(dayFormat, req.Day)
	if err != nil {
		return errInvalidDay
	}
	req.day = day
	return nil
}

// Date returns the day parsed during Validate.
func (req *BuyTicketRequest) Date() time.Time {
	return req.day
}

type CreditRequest struct {
	Amount string `json:"amount"`
}

func (req *CreditRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Amount, validation.Required),
	); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return errInvalidAmount
	}
	return nil
}

func (req *CreditRequest) DecimalAmount() decimal.Decimal {
	amount, _ := decimal.NewFromString(req.Amount)
	return amount
}

type ChangePinRequest struct {
	CurrentPin string `json:"current_pin"`
	NewPin     string `json:"new_pin"`
}

func (req *ChangePinRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentPin, validation.Required, validation.Match(pinExp).Error(errInvalidPin.Error())),
		validation.Field(&req.NewPin, validation.Required, validation.Match(pinExp).Error(errInvalidPin.Error())),
	)
}
