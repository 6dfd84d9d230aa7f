package validation

import (
	"github.com/uac/cafeteria-api/internal/domain"
)

// DefaultPostalCodePattern accepts the Portuguese format (e.g. 9600-508).
const DefaultPostalCodePattern = `^[0-9]{4}-[0-9]{3}$`

// AddressValidator checks Address fields. The postal-code pattern can be
// overridden per deployment.
type AddressValidator struct {
	PostalCodePattern string
}

func NewAddressValidator() *AddressValidator {
	return &AddressValidator{PostalCodePattern: DefaultPostalCodePattern}
}

func (av *AddressValidator) Validate(a *domain.Address) error {
	v := New()

	v.Require("street", a.Street)
	v.Require("number", a.Number)
	if v.Require("postal_code", a.PostalCode) {
		v.Pattern("postal_code", a.PostalCode, av.PostalCodePattern, "invalid postal code format")
	}
	v.Require("city", a.City)

	return v.Err()
}
