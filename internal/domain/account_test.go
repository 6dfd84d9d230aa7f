package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uac/cafeteria-api/internal/domain"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testMeal() domain.Meal {
	return domain.Meal{
		Time:       domain.Lunch,
		Type:       domain.Fish,
		Soup:       "Caldo verde",
		MainCourse: "Grilled sardines",
		Dessert:    "Fruit",
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("CorrectPinResetsCounter", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")
		a.FailedAttempts = 2

		ok, err := a.Authenticate("1234")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0, a.FailedAttempts)
		assert.False(t, a.Locked)
	})

	t.Run("WrongPinIncrementsCounter", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")

		ok, err := a.Authenticate("0000")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, a.FailedAttempts)
		assert.False(t, a.Locked)
	})

	t.Run("ThirdFailureLocks", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")

		for i := 0; i < 3; i++ {
			ok, err := a.Authenticate("0000")
			require.NoError(t, err)
			assert.False(t, ok)
		}

		assert.True(t, a.Locked)
		assert.Equal(t, domain.MaxFailedAttempts, a.FailedAttempts)
	})

	t.Run("LockedAccountRefusesEvenCorrectPin", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")
		for i := 0; i < 3; i++ {
			_, _ = a.Authenticate("0000")
		}

		ok, err := a.Authenticate("1234")

		assert.ErrorIs(t, err, domain.ErrAccountLocked)
		assert.False(t, ok)
		// No attempt is consumed once locked.
		assert.Equal(t, domain.MaxFailedAttempts, a.FailedAttempts)
	})

	t.Run("SuccessBetweenFailuresResets", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")
		_, _ = a.Authenticate("0000")
		_, _ = a.Authenticate("0000")
		_, _ = a.Authenticate("1234")

		ok, err := a.Authenticate("0000")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, a.FailedAttempts)
		assert.False(t, a.Locked)
	})
}

func TestUnlock(t *testing.T) {
	a := domain.NewAccount(20261234, "1234")
	for i := 0; i < 3; i++ {
		_, _ = a.Authenticate("0000")
	}
	require.True(t, a.Locked)

	a.Unlock()

	assert.False(t, a.Locked)
	assert.Equal(t, 0, a.FailedAttempts)

	ok, err := a.Authenticate("1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCredit(t *testing.T) {
	t.Run("AddsBalanceAndAppendsTransaction", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")

		tr, err := a.Credit(money("10.00"), "admin")

		require.NoError(t, err)
		assert.True(t, a.Balance.Equal(money("10.00")))
		require.Len(t, a.Transactions, 1)
		assert.Equal(t, domain.TransactionCredit, tr.Kind)
		assert.Equal(t, "admin", tr.Administrator)
		assert.True(t, tr.Amount.Equal(money("10.00")))
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")

		_, err := a.Credit(money("0"), "admin")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		_, err = a.Credit(money("-5.00"), "admin")
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)

		assert.True(t, a.Balance.IsZero())
		assert.Empty(t, a.Transactions)
	})
}

func TestBuyTicket(t *testing.T) {
	t.Run("DebitsPriceAndAppendsTicket", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")
		_, err := a.Credit(money("10.00"), "admin")
		require.NoError(t, err)

		tr, err := a.BuyTicket(testMeal(), money("2.40"))

		require.NoError(t, err)
		assert.True(t, a.Balance.Equal(money("7.60")))
		assert.Equal(t, domain.TransactionTicket, tr.Kind)
		assert.True(t, tr.Amount.Equal(money("-2.40")))
		require.NotNil(t, tr.Meal)
		assert.Equal(t, "Grilled sardines", tr.Meal.MainCourse)
	})

	t.Run("NeverSellsOnCredit", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")
		_, err := a.Credit(money("2.00"), "admin")
		require.NoError(t, err)

		_, err = a.BuyTicket(testMeal(), money("2.40"))

		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.True(t, a.Balance.Equal(money("2.00")))
		assert.Len(t, a.Transactions, 1)
	})

	t.Run("ExactBalanceIsEnough", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")
		_, err := a.Credit(money("2.40"), "admin")
		require.NoError(t, err)

		_, err = a.BuyTicket(testMeal(), money("2.40"))

		require.NoError(t, err)
		assert.True(t, a.Balance.IsZero())
	})

	t.Run("RejectsNonPositivePrice", func(t *testing.T) {
		a := domain.NewAccount(20261234, "1234")
		_, err := a.Credit(money("10.00"), "admin")
		require.NoError(t, err)

		_, err = a.BuyTicket(testMeal(), money("0"))
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})
}

// The balance must always equal the sum of all transaction amounts.
func TestBalanceMatchesLedger(t *testing.T) {
	a := domain.NewAccount(20261234, "1234")

	_, err := a.Credit(money("10.00"), "admin")
	require.NoError(t, err)
	_, err = a.BuyTicket(testMeal(), money("2.40"))
	require.NoError(t, err)
	_, err = a.Credit(money("5.50"), "admin")
	require.NoError(t, err)
	_, err = a.BuyTicket(testMeal(), money("2.40"))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, tr := range a.Transactions {
		sum = sum.Add(tr.Amount)
	}

	assert.True(t, a.Balance.Equal(sum))
	assert.True(t, a.Balance.Equal(money("10.70")))
}
