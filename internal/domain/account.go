package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountLocked     = errors.New("account is locked")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// MaxFailedAttempts is the number of consecutive wrong PINs that locks
// an account. The third failure both counts and locks.
const MaxFailedAttempts = 3

// Account is a student's prepaid ledger: a balance, a PIN with a lockout
// counter, and the ordered history of transactions that produced the balance.
// Balance always equals the sum of all transaction amounts.
type Account struct {
	ID             int
	Balance        decimal.Decimal
	PinCode        string
	FailedAttempts int
	Locked         bool
	Transactions   []Transaction
}

func NewAccount(id int, pinCode string) *Account {
	return &Account{
		ID:      id,
		Balance: decimal.Zero,
		PinCode: pinCode,
	}
}

// Authenticate checks a candidate PIN. A locked account always refuses
// without consuming an attempt. A correct PIN resets the failure counter;
// a wrong one increments it, locking the account on the third failure.
func (a *Account) Authenticate(pinCode string) (bool, error) {
	if a.Locked {
		return false, ErrAccountLocked
	}

	if pinCode == a.PinCode {
		a.FailedAttempts = 0
		return true, nil
	}

	a.FailedAttempts++
	if a.FailedAttempts >= MaxFailedAttempts {
		a.FailedAttempts = MaxFailedAttempts
		a.Locked = true
	}

	return false, nil
}

// ChangePin replaces the PIN unconditionally. The caller is responsible for
// re-authenticating first and for validating the new PIN's format.
func (a *Account) ChangePin(newPin string) {
	a.PinCode = newPin
}

// Unlock is the administrative reset for a locked account.
func (a *Account) Unlock() {
	a.FailedAttempts = 0
	a.Locked = false
}

// Credit adds amount to the balance and appends the matching Credit
// transaction, as one unit. No authentication is required; credits are
// administrator-initiated.
func (a *Account) Credit(amount decimal.Decimal, administrator string) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}

	t := Transaction{
		AccountID:     a.ID,
		Kind:          TransactionCredit,
		Date:          time.Now(),
		Amount:        amount,
		Administrator: administrator,
	}

	a.Transactions = append(a.Transactions, t)
	a.Balance = a.Balance.Add(amount)

	return t, nil
}

// BuyTicket pays for one meal. The ticket is never issued on credit: if the
// balance can't cover the price nothing changes and ErrInsufficientFunds is
// returned. On success the balance decreases and a Ticket transaction with
// the negated price is appended, as one unit.
func (a *Account) BuyTicket(meal Meal, price decimal.Decimal) (Transaction, error) {
	if !price.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}
	if a.Balance.LessThan(price) {
		return Transaction{}, ErrInsufficientFunds
	}

	t := Transaction{
		AccountID: a.ID,
		Kind:      TransactionTicket,
		Date:      time.Now(),
		Amount:    price.Neg(),
		Meal:      &meal,
	}

	a.Transactions = append(a.Transactions, t)
	a.Balance = a.Balance.Sub(price)

	return t, nil
}
