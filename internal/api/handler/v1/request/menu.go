package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errNoMainCourse = errors.New("at least one main course is required")

type CreateMenuRequest struct {
	Day     string `json:"day"` // 2006-01-02
	Time    string `json:"time"`
	Meat    string `json:"meat"`
	Fish    string `json:"fish"`
	Veggie  string `json:"veggie"`
	Soup    string `json:"soup"`
	Dessert string `json:"dessert"`

	day time.Time
}

func (req *CreateMenuRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Time, validation.Required, validation.In("Lunch", "Dinner")),
		validation.Field(&req.Soup, validation.Required),
		validation.Field(&req.Dessert, validation.Required),
	); err != nil {
		return err
	}

	day, err := time.Parse(dayFormat, req.Day)
	if err != nil {
		return errInvalidDay
	}
	req.day = day

	if req.Meat == "" && req.Fish == "" && req.Veggie == "" {
		return errNoMainCourse
	}
	return nil
}

// Date returns the day parsed during Validate.
func (req *CreateMenuRequest) Date() time.Time {
	return req.day
}
