package roles

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantage-console/vantage/internal/shared"
)

type memoryRoleRepo struct {
	roles       map[int64]Role
	permissions map[int64]bool
	links       map[string]bool
	nextID      int64
}

func newMemoryRoleRepo() *memoryRoleRepo {
	return &memoryRoleRepo{
		roles:       make(map[int64]Role),
		permissions: make(map[int64]bool),
		links:       make(map[string]bool),
	}
}

func (r *memoryRoleRepo) List(ctx context.Context) ([]Role, error) {
	var out []Role
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

func (r *memoryRoleRepo) Get(ctx context.Context, id int64) (Detail, error) {
	role, ok := r.roles[id]
	if !ok {
		return Detail{}, shared.ErrNotFound
	}
	return Detail{Role: role}, nil
}

func (r *memoryRoleRepo) Create(ctx context.Context, name, description string) (Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return Role{}, shared.ErrConflict
		}
	}
	r.nextID++
	role := Role{ID: r.nextID, Name: name, Description: description}
	r.roles[role.ID] = role
	return role, nil
}

func (r *memoryRoleRepo) Update(ctx context.Context, id int64, name, description string) (Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	role.Name, role.Description = name, description
	r.roles[id] = role
	return role, nil
}

func (r *memoryRoleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *memoryRoleRepo) AddPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	if _, ok := r.roles[roleID]; !ok {
		return shared.ErrNotFound
	}
	for _, id := range permissionIDs {
		if !r.permissions[id] {
			return fmt.Errorf("%w: permission %d", shared.ErrNotFound, id)
		}
	}
	for _, id := range permissionIDs {
		r.links[fmt.Sprintf("%d:%d", roleID, id)] = true
	}
	return nil
}

func (r *memoryRoleRepo) RemovePermissions(ctx context.Context, roleID int64, permissionIDs []int64) (int64, error) {
	if _, ok := r.roles[roleID]; !ok {
		return 0, shared.ErrNotFound
	}
	var removed int64
	for _, id := range permissionIDs {
		key := fmt.Sprintf("%d:%d", roleID, id)
		if r.links[key] {
			delete(r.links, key)
			removed++
		}
	}
	return removed, nil
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := NewService(newMemoryRoleRepo())

	_, err := svc.Create(context.Background(), "  ", "")
	require.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "Auditor", "read everything")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Auditor", "again")
	require.True(t, errors.Is(err, shared.ErrConflict))
}

func TestAddPermissionsAllOrNothing(t *testing.T) {
	repo := newMemoryRoleRepo()
	role, err := repo.Create(context.Background(), "Auditor", "")
	require.NoError(t, err)
	repo.permissions[1] = true
	repo.permissions[2] = true
	svc := NewService(repo)

	err = svc.AddPermissions(context.Background(), role.ID, []int64{1, 2, 99})
	require.True(t, errors.Is(err, shared.ErrNotFound))
	require.Empty(t, repo.links)

	require.NoError(t, svc.AddPermissions(context.Background(), role.ID, []int64{1, 2}))
	require.Len(t, repo.links, 2)

	// re-linking the same batch is a no-op
	require.NoError(t, svc.AddPermissions(context.Background(), role.ID, []int64{1, 2}))
	require.Len(t, repo.links, 2)
}

func TestRemovePermissionsReportsCount(t *testing.T) {
	repo := newMemoryRoleRepo()
	role, err := repo.Create(context.Background(), "Auditor", "")
	require.NoError(t, err)
	repo.permissions[1] = true
	svc := NewService(repo)
	require.NoError(t, svc.AddPermissions(context.Background(), role.ID, []int64{1}))

	removed, err := svc.RemovePermissions(context.Background(), role.ID, []int64{1, 2})
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	removed, err = svc.RemovePermissions(context.Background(), role.ID, []int64{1})
	require.NoError(t, err)
	require.Equal(t, int64(0), removed)
}

func TestLinkValidation(t *testing.T) {
	svc := NewService(newMemoryRoleRepo())

	require.True(t, errors.Is(svc.AddPermissions(context.Background(), 0, []int64{1}), shared.ErrInvalidInput))
	require.True(t, errors.Is(svc.AddPermissions(context.Background(), 1, nil), shared.ErrInvalidInput))
	_, err := svc.RemovePermissions(context.Background(), 1, []int64{0})
	require.True(t, errors.Is(err, shared.ErrInvalidInput))
}
