package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/persistence"
	"github.com/uac/cafeteria-api/internal/validation"
)

var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrSequenceExhausted   = errors.New("student number sequence exhausted")
	ErrStudentAlreadyThere = errors.New("student already exists")
)

// Student numbers are year*10000 + a sequential value in this range.
const (
	firstStudentNumber = 1000
	lastStudentNumber  = 9000

	studentSequenceKey = "account.seq"
)

type StudentMapper interface {
	Find(id int) (*domain.Student, error)
	Insert(student *domain.Student) (int, error)
	Update(student *domain.Student) (bool, error)
}

type AddressMapper interface {
	Insert(address *domain.Address) (int, error)
	Update(address *domain.Address) (bool, error)
}

type AccountInserter interface {
	Insert(account *domain.Account) (int, error)
}

// Sequence is the persistent counter behind student numbers. The
// Properties Store satisfies it; every advance hits disk so a crash can't
// hand out the same number twice.
type Sequence interface {
	GetInt(key string) (int, error)
	SetInt(key string, value int) error
}

// StudentService owns the student lifecycle: enrollment (address, account
// and student created together), profile updates, and archival on delete.
type StudentService struct {
	students  StudentMapper
	addresses AddressMapper
	accounts  AccountInserter
	sequence  Sequence
	notifier  Notifier
	validator *validation.StudentValidator
}

func NewStudentService(
	students StudentMapper,
	addresses AddressMapper,
	accounts AccountInserter,
	sequence Sequence,
	notifier Notifier,
) *StudentService {
	return &StudentService{
		students:  students,
		addresses: addresses,
		accounts:  accounts,
		sequence:  sequence,
		notifier:  notifier,
		validator: validation.NewStudentValidator(),
	}
}

// Enroll validates the student, assigns the next student number, persists
// address, account and student, and notifies the student of the generated
// PIN. The returned PIN is also handed back for the enrollment receipt.
func (s *StudentService) Enroll(student *domain.Student) (pin string, err error) {
	if err = s.validator.Validate(student); err != nil {
		return "", err
	}

	id, err := s.nextStudentNumber()
	if err != nil {
		return "", err
	}

	pin, err = generatePin()
	if err != nil {
		return "", fmt.Errorf("generating pin -> %w", err)
	}

	if _, err = s.addresses.Insert(student.Address); err != nil {
		return "", fmt.Errorf("s.addresses.Insert -> %w", err)
	}

	student.ID = id
	if _, err = s.students.Insert(student); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return "", ErrStudentAlreadyThere
		}
		return "", fmt.Errorf("s.students.Insert -> %w", err)
	}

	student.Account = domain.NewAccount(id, pin)
	if _, err = s.accounts.Insert(student.Account); err != nil {
		return "", fmt.Errorf("s.accounts.Insert -> %w", err)
	}

	subject := "Cafeteria account created"
	body := fmt.Sprintf("Student number: %d\nPIN code: %s", id, pin)
	if err = s.notifier.Notify(student.Email, subject, body); err != nil {
		// Enrollment stands; the PIN is still returned to the caller.
		zap.L().Warn("failed to notify student of new account",
			zap.Int("student_id", id),
			zap.Error(err),
		)
	}

	return pin, nil
}

func (s *StudentService) Get(studentID int) (*domain.Student, error) {
	student, err := s.students.Find(studentID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("s.students.Find -> %w", err)
	}
	return student, nil
}

// Update persists profile changes to a student and its address.
func (s *StudentService) Update(student *domain.Student) error {
	if err := s.validator.Validate(student); err != nil {
		return err
	}

	if _, err := s.addresses.Update(student.Address); err != nil {
		return fmt.Errorf("s.addresses.Update -> %w", err)
	}

	updated, err := s.students.Update(student)
	if err != nil {
		return fmt.Errorf("s.students.Update -> %w", err)
	}
	if !updated {
		return ErrStudentNotFound
	}
	return nil
}

// Archive moves a student to the historic record instead of destroying it.
// The account and its ledger move with the student.
func (s *StudentService) Archive(studentID int) error {
	student, err := s.Get(studentID)
	if err != nil {
		return err
	}

	student.Archived = true

	updated, err := s.students.Update(student)
	if err != nil {
		return fmt.Errorf("s.students.Update -> %w", err)
	}
	if !updated {
		return ErrStudentNotFound
	}
	return nil
}

// nextStudentNumber advances the persistent sequence and composes the
// year-prefixed student number.
func (s *StudentService) nextStudentNumber() (int, error) {
	seq, err := s.sequence.GetInt(studentSequenceKey)
	if err != nil {
		return 0, fmt.Errorf("s.sequence.GetInt -> %w", err)
	}

	if seq < firstStudentNumber || seq > lastStudentNumber {
		return 0, ErrSequenceExhausted
	}

	if err = s.sequence.SetInt(studentSequenceKey, seq+1); err != nil {
		return 0, fmt.Errorf("s.sequence.SetInt -> %w", err)
	}

	return time.Now().Year()*10000 + seq, nil
}

func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
