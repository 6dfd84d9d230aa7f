package service

import (
	"github.com/shopspring/decimal"

	"github.com/uac/cafeteria-api/internal/domain"
)

// Notifier delivers messages to students (e.g. the PIN at enrollment).
// Actual delivery (SMTP or otherwise) lives outside the core.
type Notifier interface {
	Notify(recipient, subject, body string) error
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(recipient, subject, body string) error {
	return nil
}

// Pricer computes the price a given student pays for a given meal.
// Scholarship discounts and other pricing policy live outside the core.
type Pricer interface {
	PriceOf(meal domain.Meal, student *domain.Student) decimal.Decimal
}

// FlatPricer charges every student the same ticket price.
type FlatPricer struct {
	Price decimal.Decimal
}

func (p FlatPricer) PriceOf(domain.Meal, *domain.Student) decimal.Decimal {
	return p.Price
}
