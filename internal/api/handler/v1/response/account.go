package response

import (
	"time"

	"github.com/uac/cafeteria-api/internal/domain"
)

type Account struct {
	ID             int           `json:"id"`
	Balance        string        `json:"balance"`
	Locked         bool          `json:"locked"`
	FailedAttempts int           `json:"failed_attempts"`
	Transactions   []Transaction `json:"transactions,omitempty"`
}

type Transaction struct {
	ID            uint      `json:"id"`
	Kind          string    `json:"kind"`
	Date          time.Time `json:"date"`
	Amount        string    `json:"amount"`
	Administrator string    `json:"administrator,omitempty"`
	Meal          *Meal     `json:"meal,omitempty"`
}

type Meal struct {
	Day        string `json:"day"`
	Time       string `json:"time"`
	Type       string `json:"type"`
	Soup       string `json:"soup"`
	MainCourse string `json:"main_course"`
	Dessert    string `json:"dessert"`
}

func NewAccount(a *domain.Account, withHistory bool) Account {
	resp := Account{
		ID:             a.ID,
		Balance:        a.Balance.StringFixed(2),
		Locked:         a.Locked,
		FailedAttempts: a.FailedAttempts,
	}

	if withHistory {
		resp.Transactions = make([]Transaction, len(a.Transactions))
		for i, t := range a.Transactions {
			resp.Transactions[i] = NewTransaction(t)
		}
	}

	return resp
}

func NewTransaction(t domain.Transaction) Transaction {
	resp := Transaction{
		ID:            t.ID,
		Kind:          string(t.Kind),
		Date:          t.Date,
		Amount:        t.Amount.StringFixed(2),
		Administrator: t.Administrator,
	}

	if t.Meal != nil {
		resp.Meal = &Meal{
			Day:        t.Meal.Day.Format("2006-01-02"),
			Time:       string(t.Meal.Time),
			Type:       string(t.Meal.Type),
			Soup:       t.Meal.Soup,
			MainCourse: t.Meal.MainCourse,
			Dessert:    t.Meal.Dessert,
		}
	}

	return resp
}
