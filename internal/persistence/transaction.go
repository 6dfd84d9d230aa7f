package persistence

import (
	"database/sql"
	"fmt"

	"github.com/uac/cafeteria-api/internal/domain"
)

// TransactionMapper is a row gateway for the append-only ledger. It sits
// outside the uniform mapper contract on purpose: transactions are immutable
// once appended, so there is nothing to update or delete, and they are read
// as a whole history per account rather than one by one.
type TransactionMapper struct {
	store store
}

func NewTransactionMapper(st store) *TransactionMapper {
	return &TransactionMapper{store: st}
}

const insertTransactionStatement = `INSERT INTO transactions
	(account_id, kind, date, amount, administrator, meal_day, meal_time, meal_type, meal_soup, meal_main, meal_dessert)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`

const findByAccountStatement = `SELECT id, kind, date, amount, administrator, meal_day, meal_time, meal_type, meal_soup, meal_main, meal_dessert
	FROM transactions WHERE account_id = $1 ORDER BY id`

// Insert appends one transaction row and assigns its store-generated id.
func (m *TransactionMapper) Insert(t *domain.Transaction) (uint, error) {
	var (
		administrator                           sql.NullString
		mealDay                                 sql.NullTime
		mealTime, mealType, soup, main, dessert sql.NullString
	)

	switch t.Kind {
	case domain.TransactionCredit:
		administrator = sql.NullString{String: t.Administrator, Valid: true}
	case domain.TransactionTicket:
		mealDay = sql.NullTime{Time: t.Meal.Day, Valid: true}
		mealTime = sql.NullString{String: string(t.Meal.Time), Valid: true}
		mealType = sql.NullString{String: string(t.Meal.Type), Valid: true}
		soup = sql.NullString{String: t.Meal.Soup, Valid: true}
		main = sql.NullString{String: t.Meal.MainCourse, Valid: true}
		dessert = sql.NullString{String: t.Meal.Dessert, Valid: true}
	}

	row := m.store.QueryRow(insertTransactionStatement,
		t.AccountID, string(t.Kind), t.Date, t.Amount,
		administrator, mealDay, mealTime, mealType, soup, main, dessert,
	)

	var id uint
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: inserting into transactions: %v", ErrPersistence, err)
	}

	t.ID = id
	return id, nil
}

// FindByAccount loads an account's full history in insertion order.
func (m *TransactionMapper) FindByAccount(accountID int) ([]domain.Transaction, error) {
	rows, err := m.store.Query(findByAccountStatement, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading transactions for account %d: %v", ErrPersistence, accountID, err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(accountID, rows)
		if err != nil {
			return nil, fmt.Errorf("%w: loading transactions for account %d: %v", ErrPersistence, accountID, err)
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loading transactions for account %d: %v", ErrPersistence, accountID, err)
	}

	return transactions, nil
}

func scanTransaction(accountID int, row Row) (domain.Transaction, error) {
	var (
		t                                       domain.Transaction
		kind                                    string
		administrator                           sql.NullString
		mealDay                                 sql.NullTime
		mealTime, mealType, soup, main, dessert sql.NullString
	)

	err := row.Scan(&t.ID, &kind, &t.Date, &t.Amount,
		&administrator, &mealDay, &mealTime, &mealType, &soup, &main, &dessert)
	if err != nil {
		return domain.Transaction{}, err
	}

	t.AccountID = accountID
	t.Kind = domain.TransactionKind(kind)

	switch t.Kind {
	case domain.TransactionCredit:
		t.Administrator = administrator.String
	case domain.TransactionTicket:
		t.Meal = &domain.Meal{
			Day:        domain.MenuDay(mealDay.Time),
			Time:       domain.MealTime(mealTime.String),
			Type:       domain.DishType(mealType.String),
			Soup:       soup.String,
			MainCourse: main.String,
			Dessert:    dessert.String,
		}
	default:
		return domain.Transaction{}, fmt.Errorf("unknown transaction kind %q", kind)
	}

	return t, nil
}
