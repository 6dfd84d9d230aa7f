package persistence

import (
	"sync"

	"gorm.io/gorm"
)

// Registry is the process-wide owner of one instance of each mapper, all
// bound to the same database handle. Mappers are built lazily on first use;
// each sync.Once guards concurrent first access. Close tears the shared
// connection down once at shutdown.
type Registry struct {
	db *gorm.DB
	st store

	transactionsOnce   sync.Once
	transactions       *TransactionMapper
	accountsOnce       sync.Once
	accounts           *AccountMapper
	addressesOnce      sync.Once
	addresses          *AddressMapper
	studentsOnce       sync.Once
	students           *StudentMapper
	menusOnce          sync.Once
	menus              *MenuMapper
	administratorsOnce sync.Once
	administrators     *AdministratorMapper
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db: db,
		st: newGormStore(db),
	}
}

func (r *Registry) Transactions() *TransactionMapper {
	r.transactionsOnce.Do(func() {
		r.transactions = NewTransactionMapper(r.st)
	})
	return r.transactions
}

func (r *Registry) Accounts() *AccountMapper {
	r.accountsOnce.Do(func() {
		r.accounts = newAccountMapper(r.st, r.Transactions())
	})
	return r.accounts
}

func (r *Registry) Addresses() *AddressMapper {
	r.addressesOnce.Do(func() {
		r.addresses = newAddressMapper(r.st)
	})
	return r.addresses
}

func (r *Registry) Students() *StudentMapper {
	r.studentsOnce.Do(func() {
		r.students = newStudentMapper(r.st, r.Addresses(), r.Accounts())
	})
	return r.students
}

func (r *Registry) Menus() *MenuMapper {
	r.menusOnce.Do(func() {
		r.menus = newMenuMapper(r.st)
	})
	return r.menus
}

func (r *Registry) Administrators() *AdministratorMapper {
	r.administratorsOnce.Do(func() {
		r.administrators = newAdministratorMapper(r.st)
	})
	return r.administrators
}

func (r *Registry) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
