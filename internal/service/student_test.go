package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/persistence"
	"github.com/uac/cafeteria-api/internal/service"
	"github.com/uac/cafeteria-api/internal/validation"
)

type stubStudents struct {
	byID      map[int]*domain.Student
	insertErr error
	noRows    bool
}

func newStubStudents() *stubStudents {
	return &stubStudents{byID: map[int]*domain.Student{}}
}

func (s *stubStudents) Find(id int) (*domain.Student, error) {
	student, ok := s.byID[id]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	return student, nil
}

func (s *stubStudents) Insert(student *domain.Student) (int, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	s.byID[student.ID] = student
	return student.ID, nil
}

func (s *stubStudents) Update(student *domain.Student) (bool, error) {
	if s.noRows {
		return false, nil
	}
	s.byID[student.ID] = student
	return true, nil
}

type stubAddresses struct {
	inserted int
	updated  int
}

func (s *stubAddresses) Insert(a *domain.Address) (int, error) {
	s.inserted++
	a.ID = s.inserted
	return a.ID, nil
}

func (s *stubAddresses) Update(a *domain.Address) (bool, error) {
	s.updated++
	return true, nil
}

type stubAccountInserter struct {
	inserted []*domain.Account
}

func (s *stubAccountInserter) Insert(a *domain.Account) (int, error) {
	s.inserted = append(s.inserted, a)
	return a.ID, nil
}

// stubSequence holds the counter in memory instead of a properties file.
type stubSequence struct {
	value int
}

func (s *stubSequence) GetInt(key string) (int, error)     { return s.value, nil }
func (s *stubSequence) SetInt(key string, value int) error { s.value = value; return nil }

type recordingNotifier struct {
	recipients []string
	bodies     []string
}

func (n *recordingNotifier) Notify(recipient, subject, body string) error {
	n.recipients = append(n.recipients, recipient)
	n.bodies = append(n.bodies, body)
	return nil
}

func enrollable() *domain.Student {
	return &domain.Student{
		Name:   "Maria Silva",
		Phone:  "912345678",
		Email:  "maria.silva@example.com",
		Course: "Computer Science",
		Address: &domain.Address{
			Street:     "Rua das Flores",
			Number:     "12",
			PostalCode: "9600-508",
			City:       "Ponta Delgada",
		},
	}
}

func TestStudentServiceEnroll(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		students := newStubStudents()
		accounts := &stubAccountInserter{}
		sequence := &stubSequence{value: 1000}
		notifier := &recordingNotifier{}
		svc := service.NewStudentService(students, &stubAddresses{}, accounts, sequence, notifier)

		student := enrollable()
		pin, err := svc.Enroll(student)

		require.NoError(t, err)
		assert.Regexp(t, `^[0-9]{4}$`, pin)

		// Year-prefixed student number from the persistent sequence.
		assert.Equal(t, time.Now().Year()*10000+1000, student.ID)
		assert.Equal(t, 1001, sequence.value)

		require.NotNil(t, student.Account)
		assert.Equal(t, student.ID, student.Account.ID)
		assert.Equal(t, pin, student.Account.PinCode)
		assert.Len(t, accounts.inserted, 1)

		require.Len(t, notifier.recipients, 1)
		assert.Equal(t, "maria.silva@example.com", notifier.recipients[0])
		assert.Contains(t, notifier.bodies[0], pin)
	})

	t.Run("InvalidStudentReportsViolations", func(t *testing.T) {
		svc := service.NewStudentService(newStubStudents(), &stubAddresses{}, &stubAccountInserter{}, &stubSequence{value: 1000}, service.NopNotifier{})

		student := enrollable()
		student.Email = "nope"
		student.Address.PostalCode = "123"

		_, err := svc.Enroll(student)
		require.Error(t, err)

		var violations validation.Violations
		require.ErrorAs(t, err, &violations)
		assert.Contains(t, violations, "email")
		assert.Contains(t, violations, "address.postal_code")
	})

	t.Run("ExhaustedSequence", func(t *testing.T) {
		svc := service.NewStudentService(newStubStudents(), &stubAddresses{}, &stubAccountInserter{}, &stubSequence{value: 9001}, service.NopNotifier{})

		_, err := svc.Enroll(enrollable())

		assert.ErrorIs(t, err, service.ErrSequenceExhausted)
	})

	t.Run("DuplicateStudent", func(t *testing.T) {
		students := newStubStudents()
		students.insertErr = persistence.ErrDuplicate
		svc := service.NewStudentService(students, &stubAddresses{}, &stubAccountInserter{}, &stubSequence{value: 1000}, service.NopNotifier{})

		_, err := svc.Enroll(enrollable())

		assert.ErrorIs(t, err, service.ErrStudentAlreadyThere)
	})
}

func TestStudentServiceGet(t *testing.T) {
	students := newStubStudents()
	svc := service.NewStudentService(students, &stubAddresses{}, &stubAccountInserter{}, &stubSequence{value: 1000}, service.NopNotifier{})

	_, err := svc.Get(999)
	assert.ErrorIs(t, err, service.ErrStudentNotFound)

	student := enrollable()
	student.ID = 20261000
	students.byID[student.ID] = student

	found, err := svc.Get(20261000)
	require.NoError(t, err)
	assert.Same(t, student, found)
}

func TestStudentServiceUpdate(t *testing.T) {
	t.Run("PersistsStudentAndAddress", func(t *testing.T) {
		students := newStubStudents()
		addresses := &stubAddresses{}
		svc := service.NewStudentService(students, addresses, &stubAccountInserter{}, &stubSequence{value: 1000}, service.NopNotifier{})

		student := enrollable()
		student.ID = 20261000
		students.byID[student.ID] = student

		student.Phone = "935555555"
		require.NoError(t, svc.Update(student))

		assert.Equal(t, 1, addresses.updated)
	})

	t.Run("GoneRowIsNotFound", func(t *testing.T) {
		students := newStubStudents()
		students.noRows = true
		svc := service.NewStudentService(students, &stubAddresses{}, &stubAccountInserter{}, &stubSequence{value: 1000}, service.NopNotifier{})

		student := enrollable()
		student.ID = 20261000

		assert.ErrorIs(t, svc.Update(student), service.ErrStudentNotFound)
	})
}

func TestStudentServiceArchive(t *testing.T) {
	students := newStubStudents()
	svc := service.NewStudentService(students, &stubAddresses{}, &stubAccountInserter{}, &stubSequence{value: 1000}, service.NopNotifier{})

	student := enrollable()
	student.ID = 20261000
	students.byID[student.ID] = student

	require.NoError(t, svc.Archive(20261000))
	assert.True(t, student.Archived)

	assert.ErrorIs(t, svc.Archive(999), service.ErrStudentNotFound)
}
