package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionCredit TransactionKind = "Credit"
	TransactionTicket TransactionKind = "Ticket"
)

// Transaction is one immutable entry in an account's ledger. Credits carry
// the administrator who authorized them and a positive amount; tickets carry
// the meal bought and a negative amount. Entries are append-only: there is no
// update or delete for an individual transaction.
type Transaction struct {
	ID        uint
	AccountID int
	Kind      TransactionKind
	Date      time.Time
	Amount    decimal.Decimal

	// Administrator is set on Credit transactions only.
	Administrator string

	// Meal is set on Ticket transactions only.
	Meal *Meal
}

func (t Transaction) Description() string {
	switch t.Kind {
	case TransactionCredit:
		return fmt.Sprintf("credit of %v by %v", t.Amount, t.Administrator)
	case TransactionTicket:
		return fmt.Sprintf("ticket for %v (%v)", t.Meal.MainCourse, t.Meal.Type)
	default:
		return fmt.Sprintf("unknown transaction kind %q", t.Kind)
	}
}
