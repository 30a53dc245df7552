package modules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantage-console/vantage/internal/rbac"
	"github.com/vantage-console/vantage/internal/shared"
)

// memoryModuleRepo mimics the SQL repository contract: creating a module
// materializes one permission per canonical action.
type memoryModuleRepo struct {
	modules map[int64]Module
	perms   map[int64][]PermissionSummary
	nextID  int64
}

func newMemoryModuleRepo() *memoryModuleRepo {
	return &memoryModuleRepo{modules: make(map[int64]Module), perms: make(map[int64][]PermissionSummary)}
}

func (r *memoryModuleRepo) List(ctx context.Context) ([]Module, error) {
	var out []Module
	for _, m := range r.modules {
		out = append(out, m)
	}
	return out, nil
}

func (r *memoryModuleRepo) Get(ctx context.Context, id int64) (Detail, error) {
	m, ok := r.modules[id]
	if !ok {
		return Detail{}, shared.ErrNotFound
	}
	return Detail{Module: m, Permissions: r.perms[id]}, nil
}

func (r *memoryModuleRepo) Create(ctx context.Context, name, description string) (Module, error) {
	for _, m := range r.modules {
		if m.Name == name {
			return Module{}, shared.ErrConflict
		}
	}
	r.nextID++
	m := Module{ID: r.nextID, Name: name, Description: description}
	r.modules[m.ID] = m
	for _, action := range rbac.Actions() {
		r.nextID++
		r.perms[m.ID] = append(r.perms[m.ID], PermissionSummary{ID: r.nextID, Action: action})
	}
	return m, nil
}

func (r *memoryModuleRepo) Update(ctx context.Context, id int64, name, description string) (Module, error) {
	m, ok := r.modules[id]
	if !ok {
		return Module{}, shared.ErrNotFound
	}
	m.Name, m.Description = name, description
	r.modules[id] = m
	return m, nil
}

func (r *memoryModuleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.modules[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.modules, id)
	delete(r.perms, id)
	return nil
}

func TestCreateModuleMaterializesPermissions(t *testing.T) {
	repo := newMemoryModuleRepo()
	svc := NewService(repo)

	m, err := svc.Create(context.Background(), "Billing", "invoices and payments")
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, detail.Permissions, 4)

	var actions []rbac.Action
	for _, p := range detail.Permissions {
		actions = append(actions, p.Action)
	}
	require.ElementsMatch(t, rbac.Actions(), actions)
}

func TestCreateModuleValidation(t *testing.T) {
	svc := NewService(newMemoryModuleRepo())

	_, err := svc.Create(context.Background(), "   ", "")
	require.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestCreateDuplicateModuleConflicts(t *testing.T) {
	svc := NewService(newMemoryModuleRepo())

	_, err := svc.Create(context.Background(), "Billing", "")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "Billing", "")
	require.True(t, errors.Is(err, shared.ErrConflict))
}

func TestDeleteModuleRemovesPermissions(t *testing.T) {
	repo := newMemoryModuleRepo()
	svc := NewService(repo)

	m, err := svc.Create(context.Background(), "Billing", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), m.ID))
	require.Empty(t, repo.perms)

	require.True(t, errors.Is(svc.Delete(context.Background(), m.ID), shared.ErrNotFound))
}
