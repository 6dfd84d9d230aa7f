package validation

import (
	"github.com/uac/cafeteria-api/internal/domain"
)

const (
	emailPattern = `^[_A-Za-z0-9-]+(\.[_A-Za-z0-9-]+)*@[A-Za-z0-9]+(\.[A-Za-z0-9]+)*(\.[A-Za-z]{2,})$`
	phonePattern = `^[0-9]{9,}$`
)

// StudentValidator checks Student fields, delegating the address to an
// AddressValidator so address violations surface in the same pass.
type StudentValidator struct {
	Address *AddressValidator
}

func NewStudentValidator() *StudentValidator {
	return &StudentValidator{Address: NewAddressValidator()}
}

func (sv *StudentValidator) Validate(s *domain.Student) error {
	v := New()

	v.Require("name", s.Name)
	v.Require("course", s.Course)
	if v.Require("email", s.Email) {
		v.Pattern("email", s.Email, emailPattern, "invalid email format")
	}
	if v.Require("phone", s.Phone) {
		v.Pattern("phone", s.Phone, phonePattern, "must have at least 9 digits")
	}

	if v.Check(s.Address != nil, "address", "is required") {
		if err := sv.Address.Validate(s.Address); err != nil {
			if violations, ok := err.(Violations); ok {
				for field, messages := range violations {
					for _, m := range messages {
						v.violations.Add("address."+field, m)
					}
				}
			}
		}
	}

	return v.Err()
}
