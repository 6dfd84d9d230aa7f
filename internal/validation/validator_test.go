package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/validation"
)

func validStudent() *domain.Student {
	return &domain.Student{
		Name:   "Maria Silva",
		Phone:  "912345678",
		Email:  "maria.silva@example.com",
		Course: "Computer Science",
		Address: &domain.Address{
			Street:     "Rua das Flores",
			Number:     "12",
			PostalCode: "9600-508",
			City:       "Ponta Delgada",
		},
	}
}

func TestValidatorAccumulates(t *testing.T) {
	v := validation.New()
	v.Require("name", "")
	v.Require("city", "Lisboa")
	v.Digits("pin", "12a4", 4)

	err := v.Err()
	require.Error(t, err)

	violations, ok := err.(validation.Violations)
	require.True(t, ok)
	assert.Len(t, violations, 2)
	assert.Contains(t, violations, "name")
	assert.Contains(t, violations, "pin")
	assert.NotContains(t, violations, "city")
}

func TestValidatorErrNilWhenClean(t *testing.T) {
	v := validation.New()
	v.Require("name", "Maria")

	assert.NoError(t, v.Err())
}

func TestCheckChainsDependentAssertions(t *testing.T) {
	v := validation.New()

	// A blank value reports "is required" only, not a format violation too.
	if v.Require("email", "") {
		v.Pattern("email", "", `^.+@.+$`, "invalid email format")
	}

	violations := v.Err().(validation.Violations)
	assert.Equal(t, []string{"is required"}, violations["email"])
}

func TestStudentValidator(t *testing.T) {
	t.Run("AcceptsValidStudent", func(t *testing.T) {
		sv := validation.NewStudentValidator()

		assert.NoError(t, sv.Validate(validStudent()))
	})

	t.Run("ReportsEveryViolationAtOnce", func(t *testing.T) {
		s := validStudent()
		s.Name = ""
		s.Email = "not-an-email"
		s.Address.PostalCode = "12345"

		err := validation.NewStudentValidator().Validate(s)
		require.Error(t, err)

		violations := err.(validation.Violations)
		assert.Contains(t, violations, "name")
		assert.Contains(t, violations, "email")
		assert.Contains(t, violations, "address.postal_code")
	})

	t.Run("RequiresAnAddress", func(t *testing.T) {
		s := validStudent()
		s.Address = nil

		err := validation.NewStudentValidator().Validate(s)
		require.Error(t, err)

		violations := err.(validation.Violations)
		assert.Contains(t, violations, "address")
	})

	t.Run("RejectsShortPhone", func(t *testing.T) {
		s := validStudent()
		s.Phone = "12345"

		err := validation.NewStudentValidator().Validate(s)
		require.Error(t, err)

		violations := err.(validation.Violations)
		assert.Contains(t, violations, "phone")
	})
}

func TestAddressValidatorPostalCodeOverride(t *testing.T) {
	av := validation.NewAddressValidator()
	av.PostalCodePattern = `^[0-9]{5}$`

	a := &domain.Address{
		Street:     "Main Street",
		Number:     "1",
		PostalCode: "90210",
		City:       "Springfield",
	}

	assert.NoError(t, av.Validate(a))

	a.PostalCode = "9600-508"
	assert.Error(t, av.Validate(a))
}

func TestValidatePin(t *testing.T) {
	assert.NoError(t, validation.ValidatePin("0000"))
	assert.NoError(t, validation.ValidatePin("9876"))

	assert.Error(t, validation.ValidatePin(""))
	assert.Error(t, validation.ValidatePin("123"))
	assert.Error(t, validation.ValidatePin("12345"))
	assert.Error(t, validation.ValidatePin("12a4"))
}
