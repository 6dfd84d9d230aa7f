package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Adapter supplies the per-entity variation points of the mapper framework:
// the table name, the three statement texts, and the row/entity conversions.
// The find/insert/update control flow itself lives in Mapper and is written
// exactly once.
type Adapter[K comparable, E any] interface {
	Table() string

	// FindStatement selects one row by key. Parameters are the key columns.
	FindStatement() string
	// InsertStatement inserts one row and RETURNINGs the key columns, so the
	// store-assigned identifier comes back from the same round trip.
	InsertStatement() string
	// UpdateStatement updates one row by key.
	UpdateStatement() string

	// Scan builds the entity from a row produced by FindStatement.
	Scan(id K, row Row) (E, error)
	// ScanKey reads the key columns RETURNINGed by InsertStatement.
	ScanKey(row Row) (K, error)

	InsertArgs(entity E) []any
	UpdateArgs(entity E) []any
	SetKey(entity E, id K)
}

// keyArgsProvider lets adapters with composite keys expand the key into
// its statement parameters. Scalar keys bind as a single parameter.
type keyArgsProvider[K comparable] interface {
	KeyArgs(id K) []any
}

// deleteStatementProvider overrides the default "DELETE ... WHERE id = $1"
// for adapters whose key isn't a single id column.
type deleteStatementProvider interface {
	DeleteStatement() string
}

// loadHook runs after a freshly loaded entity is scanned and before it is
// cached, so adapters can attach dependent rows (e.g. an account's
// transaction history).
type loadHook[E any] interface {
	AfterLoad(entity E) error
}

// Mapper implements the uniform find/insert/update/delete contract for one
// entity kind over an Adapter. It owns the identity map for its entity:
// loading the same identifier twice returns the same in-memory instance for
// the lifetime of the mapper, and entries are never pruned automatically.
type Mapper[K comparable, E any] struct {
	store   store
	adapter Adapter[K, E]

	mu     sync.Mutex
	loaded map[K]E
}

func NewMapper[K comparable, E any](st store, adapter Adapter[K, E]) *Mapper[K, E] {
	return &Mapper[K, E]{
		store:   st,
		adapter: adapter,
		loaded:  make(map[K]E),
	}
}

// Find returns the cached instance for id, or loads, caches and returns it.
func (m *Mapper[K, E]) Find(id K) (E, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entity, ok := m.loaded[id]; ok {
		return entity, nil
	}

	var zero E

	row := m.store.QueryRow(m.adapter.FindStatement(), m.keyArgs(id)...)
	entity, err := m.adapter.Scan(id, row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("%w: %s id %v", ErrNotFound, m.adapter.Table(), id)
		}
		return zero, fmt.Errorf("%w: finding %s id %v: %v", ErrPersistence, m.adapter.Table(), id, err)
	}

	if hook, ok := m.adapter.(loadHook[E]); ok {
		if err = hook.AfterLoad(entity); err != nil {
			return zero, fmt.Errorf("%w: loading %s id %v: %v", ErrPersistence, m.adapter.Table(), id, err)
		}
	}

	m.loaded[id] = entity
	return entity, nil
}

// Insert stores the entity, assigns it the store-returned identifier and
// caches it under that identifier. It does not retry; whether a failure is
// retry-safe is the caller's call.
func (m *Mapper[K, E]) Insert(entity E) (K, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero K

	row := m.store.QueryRow(m.adapter.InsertStatement(), m.adapter.InsertArgs(entity)...)
	id, err := m.adapter.ScanKey(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return zero, fmt.Errorf("%w: %s: %v", ErrDuplicate, m.adapter.Table(), err)
		}
		return zero, fmt.Errorf("%w: inserting into %s: %v", ErrPersistence, m.adapter.Table(), err)
	}

	m.adapter.SetKey(entity, id)
	m.loaded[id] = entity
	return id, nil
}

// Update persists the entity's current state. It returns false, not an
// error, when zero rows were affected: the out-of-band signal that the row
// is gone or stale, which every ledger-mutating caller must check.
func (m *Mapper[K, E]) Update(entity E) (bool, error) {
	affected, err := m.store.Exec(m.adapter.UpdateStatement(), m.adapter.UpdateArgs(entity)...)
	if err != nil {
		return false, fmt.Errorf("%w: updating %s: %v", ErrPersistence, m.adapter.Table(), err)
	}
	return affected > 0, nil
}

// Delete removes the row for id and evicts it from the identity map.
func (m *Mapper[K, E]) Delete(id K) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stmt := fmt.Sprintf("DELETE FROM %s WHERE id = $1", m.adapter.Table())
	if provider, ok := m.adapter.(deleteStatementProvider); ok {
		stmt = provider.DeleteStatement()
	}

	affected, err := m.store.Exec(stmt, m.keyArgs(id)...)
	if err != nil {
		return fmt.Errorf("%w: deleting from %s: %v", ErrPersistence, m.adapter.Table(), err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s id %v", ErrNotFound, m.adapter.Table(), id)
	}

	delete(m.loaded, id)
	return nil
}

func (m *Mapper[K, E]) keyArgs(id K) []any {
	if provider, ok := m.adapter.(keyArgsProvider[K]); ok {
		return provider.KeyArgs(id)
	}
	return []any{id}
}
