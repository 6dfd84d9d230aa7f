package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/uac/cafeteria-api/internal/domain"
)

// AdministratorMapper wraps the generic mapper with a username lookup,
// which resolves to an id and then goes through Find so the identity map
// stays authoritative.
type AdministratorMapper struct {
	*Mapper[int, *domain.Administrator]

	store store
}

type administratorAdapter struct{}

func newAdministratorMapper(st store) *AdministratorMapper {
	return &AdministratorMapper{
		Mapper: NewMapper[int, *domain.Administrator](st, administratorAdapter{}),
		store:  st,
	}
}

func (administratorAdapter) Table() string {
	return "administrators"
}

func (administratorAdapter) FindStatement() string {
	return `SELECT username, name, password_hash FROM administrators WHERE id = $1`
}

func (administratorAdapter) InsertStatement() string {
	return `INSERT INTO administrators (username, name, password_hash)
		VALUES ($1, $2, $3) RETURNING id`
}

func (administratorAdapter) UpdateStatement() string {
	return `UPDATE administrators SET username = $1, name = $2, password_hash = $3
		WHERE id = $4`
}

func (administratorAdapter) Scan(id int, row Row) (*domain.Administrator, error) {
	a := &domain.Administrator{ID: id}
	if err := row.Scan(&a.Username, &a.Name, &a.PasswordHash); err != nil {
		return nil, err
	}
	return a, nil
}

func (administratorAdapter) ScanKey(row Row) (int, error) {
	var id int
	err := row.Scan(&id)
	return id, err
}

func (administratorAdapter) InsertArgs(a *domain.Administrator) []any {
	return []any{a.Username, a.Name, a.PasswordHash}
}

func (administratorAdapter) UpdateArgs(a *domain.Administrator) []any {
	return []any{a.Username, a.Name, a.PasswordHash, a.ID}
}

func (administratorAdapter) SetKey(a *domain.Administrator, id int) {
	a.ID = id
}

func (m *AdministratorMapper) FindByUsername(username string) (*domain.Administrator, error) {
	row := m.store.QueryRow(`SELECT id FROM administrators WHERE username = $1`, username)

	var id int
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: administrator %q", ErrNotFound, username)
		}
		return nil, fmt.Errorf("%w: finding administrator %q: %v", ErrPersistence, username, err)
	}

	return m.Find(id)
}
