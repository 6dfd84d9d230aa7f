package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/uac/cafeteria-api/internal/domain"
	"github.com/uac/cafeteria-api/internal/persistence"
)

var (
	ErrAdminNotFound = errors.New("administrator not found")
	ErrWrongPassword = errors.New("wrong password")
)

// The seeded administrator, meant to be replaced on first login in a real
// deployment.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

type AdministratorMapper interface {
	FindByUsername(username string) (*domain.Administrator, error)
	Insert(admin *domain.Administrator) (int, error)
}

// AuthService authenticates administrators for the backend operations
// (credits, student management, menu authoring).
type AuthService struct {
	administrators AdministratorMapper
}

func NewAuthService(administrators AdministratorMapper) *AuthService {
	return &AuthService{administrators: administrators}
}

func (s *AuthService) Login(username, password string) (*domain.Administrator, error) {
	admin, err := s.administrators.FindByUsername(username)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("s.administrators.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return admin, nil
}

// EnsureDefaultAdministrator seeds the default account when none exists
// yet, so a fresh install can be administered.
func (s *AuthService) EnsureDefaultAdministrator() error {
	_, err := s.administrators.FindByUsername(defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, persistence.ErrNotFound) {
		return fmt.Errorf("s.administrators.FindByUsername -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.administrators.Insert(&domain.Administrator{
		Username:     defaultAdminUsername,
		Name:         "Default Administrator",
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("s.administrators.Insert -> %w", err)
	}
	return nil
}
