package groups

import (
	"context"
	"fmt"
	"strings"

	"github.com/vantage-console/vantage/internal/shared"
)

// RepositoryPort defines data access methods for groups.
type RepositoryPort interface {
	List(ctx context.Context) ([]Group, error)
	Get(ctx context.Context, id int64) (Detail, error)
	Create(ctx context.Context, name, description string) (Group, error)
	Update(ctx context.Context, id int64, name, description string) (Group, error)
	Delete(ctx context.Context, id int64) error
	AddUsers(ctx context.Context, groupID int64, userIDs []int64) error
	RemoveUsers(ctx context.Context, groupID int64, userIDs []int64) (int64, error)
	AddRoles(ctx context.Context, groupID int64, roleIDs []int64) error
	RemoveRoles(ctx context.Context, groupID int64, roleIDs []int64) (int64, error)
}

// Service handles group business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all groups.
func (s *Service) List(ctx context.Context) ([]Group, error) {
	return s.repo.List(ctx)
}

// Get fetches a group with its users and roles.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	if id <= 0 {
		return Detail{}, fmt.Errorf("%w: invalid group id", shared.ErrInvalidInput)
	}
	return s.repo.Get(ctx, id)
}

// Create inserts a new group.
func (s *Service) Create(ctx context.Context, name, description string) (Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, fmt.Errorf("%w: group name required", shared.ErrInvalidInput)
	}
	return s.repo.Create(ctx, name, strings.TrimSpace(description))
}

// Update changes name and description.
func (s *Service) Update(ctx context.Context, id int64, name, description string) (Group, error) {
	if id <= 0 {
		return Group{}, fmt.Errorf("%w: invalid group id", shared.ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, fmt.Errorf("%w: group name required", shared.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, name, strings.TrimSpace(description))
}

// Delete removes a group.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid group id", shared.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}

// AddUsers links the given users into the group.
func (s *Service) AddUsers(ctx context.Context, groupID int64, userIDs []int64) error {
	if err := validateLinkInput(groupID, userIDs); err != nil {
		return err
	}
	return s.repo.AddUsers(ctx, groupID, userIDs)
}

// RemoveUsers unlinks the given users and reports how many links existed.
func (s *Service) RemoveUsers(ctx context.Context, groupID int64, userIDs []int64) (int64, error) {
	if err := validateLinkInput(groupID, userIDs); err != nil {
		return 0, err
	}
	return s.repo.RemoveUsers(ctx, groupID, userIDs)
}

// AddRoles links the given roles to the group.
func (s *Service) AddRoles(ctx context.Context, groupID int64, roleIDs []int64) error {
	if err := validateLinkInput(groupID, roleIDs); err != nil {
		return err
	}
	return s.repo.AddRoles(ctx, groupID, roleIDs)
}

// RemoveRoles unlinks the given roles and reports how many links existed.
func (s *Service) RemoveRoles(ctx context.Context, groupID int64, roleIDs []int64) (int64, error) {
	if err := validateLinkInput(groupID, roleIDs); err != nil {
		return 0, err
	}
	return s.repo.RemoveRoles(ctx, groupID, roleIDs)
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
