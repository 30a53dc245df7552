package modules

import (
	"context"
	"fmt"
	"strings"

	"github.com/vantage-console/vantage/internal/shared"
)

// RepositoryPort defines data access methods for modules.
type RepositoryPort interface {
	List(ctx context.Context) ([]Module, error)
	Get(ctx context.Context, id int64) (Detail, error)
	Create(ctx context.Context, name, description string) (Module, error)
	Update(ctx context.Context, id int64, name, description string) (Module, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles module business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all modules.
func (s *Service) List(ctx context.Context) ([]Module, error) {
	return s.repo.List(ctx)
}

// Get fetches a module with its permissions.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	if id <= 0 {
		return Detail{}, fmt.Errorf("%w: invalid module id", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

// Create inserts a new module; its four CRUD permissions come with it.
func (s *Service) Create(ctx context.Context, name, description string) (Module, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Module{}, fmt.Errorf("%w: module name required", shared.ErrInvalidInput)
	}
	return s.repo.Create(ctx, name, strings.TrimSpace(description))
}

// Update changes name and description.
func (s *Service) Update(ctx context.Context, id int64, name, description string) (Module, error) {
	if id <= 0 {
		return Module{}, fmt.Errorf("%w: invalid module id", shared.ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Module{}, fmt.Errorf("%w: module name required", shared.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, name, strings.TrimSpace(description))
}

// Delete removes a module and, by cascade, every permission scoped to it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid module id", shared.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}
