package persistence

import (
	"database/sql"

	"gorm.io/gorm"
)

// Row is the single-row scanning surface shared by *sql.Row and *sql.Rows.
type Row interface {
	Scan(dest ...any) error
}

// store is the minimal statement-execution surface a mapper needs. The
// production implementation sits on gorm; tests substitute a fake.
type store interface {
	QueryRow(query string, args ...any) Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (int64, error)
}

type gormStore struct {
	db *gorm.DB
}

func newGormStore(db *gorm.DB) *gormStore {
	return &gormStore{db: db}
}

func (s *gormStore) QueryRow(query string, args ...any) Row {
	return s.db.Raw(query, args...).Row()
}

func (s *gormStore) Query(query string, args ...any) (*sql.Rows, error) {
	return s.db.Raw(query, args...).Rows()
}

func (s *gormStore) Exec(query string, args ...any) (int64, error) {
	tx := s.db.Exec(query, args...)
	return tx.RowsAffected, tx.Error
}
