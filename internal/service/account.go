package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/persistence"
	"github.com/uac/cafeteria-api/internal/validation"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountLocked     = domain.ErrAccountLocked
	ErrInsufficientFunds = domain.ErrInsufficientFunds
	ErrWrongPin          = errors.New("wrong pin")

	// ErrStateCompromised signals that a ledger mutation was applied in
	// memory but the store reported zero rows on update. The in-memory
	// state is kept; the caller decides whether to retry persistence.
	ErrStateCompromised = errors.New("account state may be inconsistent with storage")
)

type AccountMapper interface {
	Find(id int) (*domain.Account, error)
	Update(account *domain.Account) (bool, error)
}

type TransactionMapper interface {
	Insert(t *domain.Transaction) (uint, error)
}

// AccountService orchestrates ledger operations: it loads accounts through
// the mapper, applies the domain mutation, then persists the new state.
// Persistence stays two-phase on purpose; a failed update after a mutation
// is logged and surfaced as ErrStateCompromised.
type AccountService struct {
	accounts     AccountMapper
	transactions TransactionMapper
}

func NewAccountService(accounts AccountMapper, transactions TransactionMapper) *AccountService {
	return &AccountService{
		accounts:     accounts,
		transactions: transactions,
	}
}

// Authenticate runs the three-strikes PIN check and persists the updated
// counter or lockout before reporting the outcome.
func (s *AccountService) Authenticate(accountID int, pin string) (*domain.Account, error) {
	account, err := s.find(accountID)
	if err != nil {
		return nil, err
	}

	ok, err := account.Authenticate(pin)
	if err != nil {
		return nil, err // locked; no state change to persist
	}

	if persistErr := s.persist(account, "authenticate"); persistErr != nil {
		return nil, persistErr
	}

	if !ok {
		return nil, ErrWrongPin
	}
	return account, nil
}

// BuyTicket pays for a meal from the account balance. The transaction row
// is appended and the account row updated as two store calls; the ledger
// mutation is not rolled back if the second fails.
func (s *AccountService) BuyTicket(accountID int, meal domain.Meal, price decimal.Decimal) (domain.Transaction, error) {
	account, err := s.find(accountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if _, err = account.BuyTicket(meal, price); err != nil {
		return domain.Transaction{}, err
	}

	appended := &account.Transactions[len(account.Transactions)-1]
	if err = s.append(account, appended, "buy ticket"); err != nil {
		return domain.Transaction{}, err
	}

	return *appended, nil
}

// Credit tops up the balance on behalf of an administrator.
func (s *AccountService) Credit(accountID int, amount decimal.Decimal, administrator string) (domain.Transaction, error) {
	account, err := s.find(accountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if _, err = account.Credit(amount, administrator); err != nil {
		return domain.Transaction{}, err
	}

	appended := &account.Transactions[len(account.Transactions)-1]
	if err = s.append(account, appended, "credit"); err != nil {
		return domain.Transaction{}, err
	}

	return *appended, nil
}

// ChangePin re-authenticates with the current PIN, validates the new one
// and persists the replacement.
func (s *AccountService) ChangePin(accountID int, currentPin, newPin string) error {
	if err := validation.ValidatePin(newPin); err != nil {
		return err
	}

	account, err := s.Authenticate(accountID, currentPin)
	if err != nil {
		return err
	}

	account.ChangePin(newPin)
	return s.persist(account, "change pin")
}

// Unlock is the administrative reset for a locked account.
func (s *AccountService) Unlock(accountID int) error {
	account, err := s.find(accountID)
	if err != nil {
		return err
	}

	account.Unlock()
	return s.persist(account, "unlock")
}

func (s *AccountService) find(accountID int) (*domain.Account, error) {
	account, err := s.accounts.Find(accountID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("s.accounts.Find -> %w", err)
	}
	return account, nil
}

// append persists a freshly appended transaction plus the mutated account.
func (s *AccountService) append(account *domain.Account, t *domain.Transaction, operation string) error {
	if _, err := s.transactions.Insert(t); err != nil {
		s.logCompromised(account, operation, err)
		return ErrStateCompromised
	}
	return s.persist(account, operation)
}

func (s *AccountService) persist(account *domain.Account, operation string) error {
	updated, err := s.accounts.Update(account)
	if err != nil {
		return fmt.Errorf("s.accounts.Update -> %w", err)
	}
	if !updated {
		s.logCompromised(account, operation, nil)
		return ErrStateCompromised
	}
	return nil
}

func (s *AccountService) logCompromised(account *domain.Account, operation string, err error) {
	zap.L().Error("ledger mutated in memory but not persisted",
		zap.Int("account_id", account.ID),
		zap.String("operation", operation),
		zap.String("balance", account.Balance.String()),
		zap.Int("transactions", len(account.Transactions)),
		zap.Error(err),
	)
}
