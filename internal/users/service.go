package users

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-console/vantage/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (Detail, error)
	Create(ctx context.Context, username, email, passwordHash string) (User, error)
	Update(ctx context.Context, id int64, username, email, passwordHash string) (User, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles user business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get fetches a user with its groups.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	if id <= 0 {
		return Detail{}, fmt.Errorf("%w: invalid user id", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

// Create registers a new user with a bcrypt credential hash.
func (s *Service) Create(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return User{}, fmt.Errorf("%w: username, email and password are required", shared.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return s.repo.Create(ctx, username, email, string(hash))
}

// Update changes username/email and optionally rotates the password.
func (s *Service) Update(ctx context.Context, id int64, username, email, password string) (User, error) {
	if id <= 0 {
		return User{}, fmt.Errorf("%w: invalid user id", shared.ErrInvalidInput)
	}
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return User{}, fmt.Errorf("%w: username and email are required", shared.ErrInvalidInput)
	}
	hash := ""
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		hash = string(h)
	}
	return s.repo.Update(ctx, id, username, email, hash)
}

// Delete removes a user. Callers may never delete their own account,
// regardless of permission.
func (s *Service) Delete(ctx context.Context, id, callerID int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user id", shared.ErrInvalidInput)
	}
	if id == callerID {
		return fmt.Errorf("%w: user %d cannot delete their own account", shared.ErrSelfDeletion, id)
	}
	return s.repo.Delete(ctx, id)
}
