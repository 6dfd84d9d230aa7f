package persistence

import (
	"github.com/uac/cafeteria-api/internal/domain"
)

type AddressMapper = Mapper[int, *domain.Address]

type addressAdapter struct{}

func newAddressMapper(st store) *AddressMapper {
	return NewMapper[int, *domain.Address](st, addressAdapter{})
}

func (addressAdapter) Table() string {
	return "addresses"
}

func (addressAdapter) FindStatement() string {
	return `SELECT street, number, postal_code, city FROM addresses WHERE id = $1`
}

func (addressAdapter) InsertStatement() string {
	return `INSERT INTO addresses (street, number, postal_code, city)
		VALUES ($1, $2, $3, $4) RETURNING id`
}

func (addressAdapter) UpdateStatement() string {
	return `UPDATE addresses SET street = $1, number = $2, postal_code = $3, city = $4
		WHERE id = $5`
}

func (addressAdapter) Scan(id int, row Row) (*domain.Address, error) {
	a := &domain.Address{ID: id}
	if err := row.Scan(&a.Street, &a.Number, &a.PostalCode, &a.City); err != nil {
		return nil, err
	}
	return a, nil
}

func (addressAdapter) ScanKey(row Row) (int, error) {
	var id int
	err := row.Scan(&id)
	return id, err
}

func (addressAdapter) InsertArgs(a *domain.Address) []any {
	return []any{a.Street, a.Number, a.PostalCode, a.City}
}

func (addressAdapter) UpdateArgs(a *domain.Address) []any {
	return []any{a.Street, a.Number, a.PostalCode, a.City, a.ID}
}

func (addressAdapter) SetKey(a *domain.Address, id int) {
	a.ID = id
}
