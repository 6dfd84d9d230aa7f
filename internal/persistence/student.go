package persistence

import (
	"github.com/uac/cafeteria-api/internal/domain"
)

// StudentMapper maps students. Student numbers are app-assigned at
// enrollment, so inserts carry the id. Loading a student pulls in its
// address and account through their own mappers, which keeps their
// identity maps authoritative.
type StudentMapper = Mapper[int, *domain.Student]

type studentAdapter struct {
	addresses *AddressMapper
	accounts  *AccountMapper
}

func newStudentMapper(st store, addresses *AddressMapper, accounts *AccountMapper) *StudentMapper {
	return NewMapper[int, *domain.Student](st, &studentAdapter{
		addresses: addresses,
		accounts:  accounts,
	})
}

func (*studentAdapter) Table() string {
	return "students"
}

func (*studentAdapter) FindStatement() string {
	return `SELECT name, address_id, phone, email, scholarship, course, archived
		FROM students WHERE id = $1`
}

func (*studentAdapter) InsertStatement() string {
	return `INSERT INTO students (id, name, address_id, phone, email, scholarship, course, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
}

func (*studentAdapter) UpdateStatement() string {
	return `UPDATE students SET name = $1, address_id = $2, phone = $3, email = $4,
		scholarship = $5, course = $6, archived = $7 WHERE id = $8`
}

func (*studentAdapter) Scan(id int, row Row) (*domain.Student, error) {
	s := &domain.Student{ID: id, Address: &domain.Address{}}
	err := row.Scan(&s.Name, &s.Address.ID, &s.Phone, &s.Email, &s.Scholarship, &s.Course, &s.Archived)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (*studentAdapter) ScanKey(row Row) (int, error) {
	var id int
	err := row.Scan(&id)
	return id, err
}

func (*studentAdapter) InsertArgs(s *domain.Student) []any {
	return []any{s.ID, s.Name, s.Address.ID, s.Phone, s.Email, s.Scholarship, s.Course, s.Archived}
}

func (*studentAdapter) UpdateArgs(s *domain.Student) []any {
	return []any{s.Name, s.Address.ID, s.Phone, s.Email, s.Scholarship, s.Course, s.Archived, s.ID}
}

func (*studentAdapter) SetKey(s *domain.Student, id int) {
	s.ID = id
}

// AfterLoad replaces the placeholder address with the mapped instance and
// attaches the student's account (same identifier, 1:1).
func (ad *studentAdapter) AfterLoad(s *domain.Student) error {
	address, err := ad.addresses.Find(s.Address.ID)
	if err != nil {
		return err
	}
	s.Address = address

	account, err := ad.accounts.Find(s.ID)
	if err != nil {
		return err
	}
	s.Account = account

	return nil
}
