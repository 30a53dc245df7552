package rbac

import (
	"context"
	"fmt"

	"github.com/vantage-console/vantage/internal/shared"
)

// RepositoryPort defines the resolution queries the service depends on.
type RepositoryPort interface {
	HasPermission(ctx context.Context, userID int64, module string, action Action) (bool, error)
	PermissionMap(ctx context.Context, userID int64) (map[string][]Action, error)
}

// Service answers authorization questions against a consistent snapshot of
// the association tables. It never writes.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// HasPermission reports whether userID may perform action on module.
func (s *Service) HasPermission(ctx context.Context, userID int64, module string, action Action) (bool, error) {
	if !action.Valid() {
		return false, fmt.Errorf("%w: unknown action %q", shared.ErrInvalidInput, action)
	}
	return s.repo.HasPermission(ctx, userID, module, action)
}

// PermissionMap returns the user's effective permissions grouped by module.
func (s *Service) PermissionMap(ctx context.Context, userID int64) (map[string][]Action, error) {
	return s.repo.PermissionMap(ctx, userID)
}

// Simulate runs the resolver on behalf of an administrator auditing another
// user's access. A nonexistent user or module simply resolves to a denial.
func (s *Service) Simulate(ctx context.Context, userID int64, module string, action Action) (Decision, error) {
	if !action.Valid() {
		return Decision{}, fmt.Errorf("%w: unknown action %q", shared.ErrInvalidInput, action)
	}
	allowed, err := s.repo.HasPermission(ctx, userID, module, action)
	if err != nil {
		return Decision{}, err
	}
	if allowed {
		return Decision{
			HasPermission: true,
			Rationale:     fmt.Sprintf("at least one group role grants %s on %s to user %d", action, module, userID),
		}, nil
	}
	return Decision{
		HasPermission: false,
		Rationale:     fmt.Sprintf("no group role grants %s on %s to user %d", action, module, userID),
	}, nil
}
