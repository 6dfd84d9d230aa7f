package validation

// PinDigits is the required PIN length for student accounts.
const PinDigits = 4

// ValidatePin asserts the 4-digit PIN format.
func ValidatePin(pin string) error {
	v := New()
	v.Digits("pin", pin, PinDigits)
	return v.Err()
}
