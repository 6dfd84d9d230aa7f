package persistence

import (
	"github.com/uac/cafeteria-api/internal/domain"
)

// AccountMapper maps prepaid accounts. The account id is app-assigned
// (it equals the owning student's number), so inserts carry it explicitly.
type AccountMapper = Mapper[int, *domain.Account]

type accountAdapter struct {
	transactions *TransactionMapper
}

func newAccountMapper(st store, transactions *TransactionMapper) *AccountMapper {
	return NewMapper[int, *domain.Account](st, &accountAdapter{transactions: transactions})
}

func (accountAdapter) Table() string {
	return "accounts"
}

func (accountAdapter) FindStatement() string {
	return `SELECT balance, pin_code, failed_attempts, locked FROM accounts WHERE id = $1`
}

func (accountAdapter) InsertStatement() string {
	return `INSERT INTO accounts (id, balance, pin_code, failed_attempts, locked)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
}

func (accountAdapter) UpdateStatement() string {
	return `UPDATE accounts SET balance = $1, pin_code = $2, failed_attempts = $3, locked = $4
		WHERE id = $5`
}

func (accountAdapter) Scan(id int, row Row) (*domain.Account, error) {
	a := &domain.Account{ID: id}
	if err := row.Scan(&a.Balance, &a.PinCode, &a.FailedAttempts, &a.Locked); err != nil {
		return nil, err
	}
	return a, nil
}

func (accountAdapter) ScanKey(row Row) (int, error) {
	var id int
	err := row.Scan(&id)
	return id, err
}

func (accountAdapter) InsertArgs(a *domain.Account) []any {
	return []any{a.ID, a.Balance, a.PinCode, a.FailedAttempts, a.Locked}
}

func (accountAdapter) UpdateArgs(a *domain.Account) []any {
	return []any{a.Balance, a.PinCode, a.FailedAttempts, a.Locked, a.ID}
}

func (accountAdapter) SetKey(a *domain.Account, id int) {
	a.ID = id
}

// AfterLoad attaches the ordered transaction history, so a found account
// comes back with its full ledger.
func (ad *accountAdapter) AfterLoad(a *domain.Account) error {
	transactions, err := ad.transactions.FindByAccount(a.ID)
	if err != nil {
		return err
	}
	a.Transactions = transactions
	return nil
}
