package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/vantage-console/vantage/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	List(ctx context.Context) ([]Role, error)
	Get(ctx context.Context, id int64) (Detail, error)
	Create(ctx context.Context, name, description string) (Role, error)
	Update(ctx context.Context, id int64, name, description string) (Role, error)
	Delete(ctx context.Context, id int64) error
	AddPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
	RemovePermissions(ctx context.Context, roleID int64, permissionIDs []int64) (int64, error)
}

// Service handles role business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all roles.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// Get fetches a role with its permissions and groups.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	if id <= 0 {
		return Detail{}, fmt.Errorf("%w: invalid role id", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

// Create inserts a new role.
func (s *Service) Create(ctx context.Context, name, description string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrInvalidInput)
	}
	return s.repo.Create(ctx, name, strings.TrimSpace(description))
}

// Update changes name and description.
func (s *Service) Update(ctx context.Context, id int64, name, description string) (Role, error) {
	if id <= 0 {
		return Role{}, fmt.Errorf("%w: invalid role id", shared.ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, fmt.Errorf("%w: role name required", shared.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, name, strings.TrimSpace(description))
}

// Delete removes a role.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid role id", shared.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

// AddPermissions links the given permissions to the role.
func (s *Service) AddPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	if err := validateLinkInput(roleID, permissionIDs); err != nil {
		return err
	}
	return s.repo.AddPermissions(ctx, roleID, permissionIDs)
}

// RemovePermissions unlinks permissions and reports how many links existed.
func (s *Service) RemovePermissions(ctx context.Context, roleID int64, permissionIDs []int64) (int64, error) {
	if err := validateLinkInput(roleID, permissionIDs); err != nil {
		return 0, err
	}
	return s.repo.RemovePermissions(ctx, roleID, permissionIDs)
}

func validateLinkInput(ownerID int64, ids []int64) error {
	if ownerID <= 0 {
		return fmt.Errorf("%w: invalid owner id", shared.ErrInvalidInput)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one id required", shared.ErrInvalidInput)
	}
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: invalid id %d", shared.ErrInvalidInput, id)
		}
	}
	return nil
}
