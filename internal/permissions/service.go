package permissions

import (
	"context"
	"fmt"

	"github.com/vantage-console/vantage/internal/rbac"
	"github.com/vantage-console/vantage/internal/shared"
)

// RepositoryPort defines data access methods for permissions.
type RepositoryPort interface {
	List(ctx context.Context) ([]Permission, error)
	Get(ctx context.Context, id int64) (Permission, error)
	Create(ctx context.Context, action string, moduleID int64) (Permission, error)
	Update(ctx context.Context, id int64, action string) (Permission, error)
	Delete(ctx context.Context, id int64) error
	GroupedByModule(ctx context.Context) ([]ModuleGroup, error)
}

// Service handles permission business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all permissions.
func (s *Service) List(ctx context.Context) ([]Permission, error) {
	return s.repo.List(ctx)
}

// Get fetches a permission.
func (s *Service) Get(ctx context.Context, id int64) (Permission, error) {
	if id <= 0 {
		return Permission{}, fmt.Errorf("%w: invalid permission id", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

// Create inserts a permission after validating the action verb.
func (s *Service) Create(ctx context.Context, action string, moduleID int64) (Permission, error) {
	if !rbac.Action(action).Valid() {
		return Permission{}, fmt.Errorf("%w: unknown action %q", shared.ErrInvalidInput, action)
	}
	if moduleID <= 0 {
		return Permission{}, fmt.Errorf("%w: invalid module id", shared.ErrInvalidInput)
	}
	return s.repo.Create(ctx, action, moduleID)
}

// Update changes the action of an existing permission.
func (s *Service) Update(ctx context.Context, id int64, action string) (Permission, error) {
	if id <= 0 {
		return Permission{}, fmt.Errorf("%w: invalid permission id", shared.ErrInvalidInput)
	}
	if !rbac.Action(action).Valid() {
		return Permission{}, fmt.Errorf("%w: unknown action %q", shared.ErrInvalidInput, action)
	}
	return s.repo.Update(ctx, id, action)
}

// Delete removes a permission.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid permission id", shared.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

// GroupedByModule returns modules with their permissions.
func (s *Service) GroupedByModule(ctx context.Context) ([]ModuleGroup, error) {
	return s.repo.GroupedByModule(ctx)
}
