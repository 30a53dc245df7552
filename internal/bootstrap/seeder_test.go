package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-console/vantage/internal/rbac"
)

type seededModule struct {
	id   int64
	name string
}

type seededPermission struct {
	id       int64
	action   string
	moduleID int64
}

type memoryStore struct {
	userCount int64

	modules     []seededModule
	permissions []seededPermission
	roles       map[int64]string
	rolePerms   map[int64][]int64
	groups      map[int64]string
	groupRoles  map[int64][]int64
	users       map[int64]string
	userGroups  map[int64][]int64
	userHashes  map[int64]string

	failOn string
	nextID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		roles:      make(map[int64]string),
		rolePerms:  make(map[int64][]int64),
		groups:     make(map[int64]string),
		groupRoles: make(map[int64][]int64),
		users:      make(map[int64]string),
		userGroups: make(map[int64][]int64),
		userHashes: make(map[int64]string),
	}
}

func (s *memoryStore) CountUsers(ctx context.Context) (int64, error) {
	return s.userCount, nil
}

func (s *memoryStore) InTx(ctx context.Context, fn func(TxPort) error) error {
	// Snapshot-free rollback: mutate a copy and swap it in on success.
	scratch := newMemoryStore()
	scratch.failOn = s.failOn
	if err := fn(scratch); err != nil {
		return err
	}
	scratch.userCount = s.userCount
	*s = *scratch
	return nil
}

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) InsertModule(ctx context.Context, name, description string) (int64, error) {
	if s.failOn == "module" {
		return 0, errors.New("boom")
	}
	id := s.id()
	s.modules = append(s.modules, seededModule{id: id, name: name})
	return id, nil
}

func (s *memoryStore) InsertPermission(ctx context.Context, action string, moduleID int64) (int64, error) {
	if s.failOn == "permission" {
		return 0, errors.New("boom")
	}
	id := s.id()
	s.permissions = append(s.permissions, seededPermission{id: id, action: action, moduleID: moduleID})
	return id, nil
}

func (s *memoryStore) InsertRole(ctx context.Context, name, description string) (int64, error) {
	id := s.id()
	s.roles[id] = name
	return id, nil
}

func (s *memoryStore) LinkRolePermission(ctx context.Context, roleID, permissionID int64) error {
	s.rolePerms[roleID] = append(s.rolePerms[roleID], permissionID)
	return nil
}

func (s *memoryStore) InsertGroup(ctx context.Context, name, description string) (int64, error) {
	id := s.id()
	s.groups[id] = name
	return id, nil
}

func (s *memoryStore) LinkGroupRole(ctx context.Context, groupID, roleID int64) error {
	s.groupRoles[groupID] = append(s.groupRoles[groupID], roleID)
	return nil
}

func (s *memoryStore) InsertUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	id := s.id()
	s.users[id] = username
	s.userHashes[id] = passwordHash
	return id, nil
}

func (s *memoryStore) LinkUserGroup(ctx context.Context, userID, groupID int64) error {
	s.userGroups[userID] = append(s.userGroups[userID], groupID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeederPopulatesFullGraph(t *testing.T) {
	store := newMemoryStore()
	seeder := NewSeeder(store, testLogger(), Config{
		AdminUsername: "admin",
		AdminEmail:    "admin@vantage.local",
		AdminPassword: "super-secret",
	})

	require.NoError(t, seeder.Run(context.Background()))

	require.Len(t, store.modules, 5)
	require.Len(t, store.permissions, 20)
	require.Len(t, store.roles, 1)
	require.Len(t, store.groups, 1)
	require.Len(t, store.users, 1)

	var names []string
	for _, m := range store.modules {
		names = append(names, m.name)
	}
	require.ElementsMatch(t, rbac.Modules(), names)

	// every module carries exactly the four CRUD actions
	perModule := make(map[int64][]string)
	for _, p := range store.permissions {
		perModule[p.moduleID] = append(perModule[p.moduleID], p.action)
	}
	require.Len(t, perModule, 5)
	for _, actions := range perModule {
		require.ElementsMatch(t, []string{"create", "read", "update", "delete"}, actions)
	}

	// the Admin role holds all twenty permissions and hangs off the
	// Administrators group, which holds the admin user
	for roleID, name := range store.roles {
		require.Equal(t, AdminRoleName, name)
		require.Len(t, store.rolePerms[roleID], 20)
	}
	for groupID, name := range store.groups {
		require.Equal(t, AdminGroupName, name)
		require.Len(t, store.groupRoles[groupID], 1)
	}
	for userID, username := range store.users {
		require.Equal(t, "admin", username)
		require.Len(t, store.userGroups[userID], 1)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.userHashes[userID]), []byte("super-secret")))
	}
}

func TestSeederSkipsWhenUsersExist(t *testing.T) {
	store := newMemoryStore()
	store.userCount = 3
	seeder := NewSeeder(store, testLogger(), Config{AdminUsername: "admin"})

	require.NoError(t, seeder.Run(context.Background()))
	require.Empty(t, store.modules)
	require.Empty(t, store.users)
}

func TestSeederFallsBackToDefaultPassword(t *testing.T) {
	store := newMemoryStore()
	seeder := NewSeeder(store, testLogger(), Config{
		AdminUsername: "admin",
		AdminEmail:    "admin@vantage.local",
	})

	require.NoError(t, seeder.Run(context.Background()))
	for userID := range store.users {
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.userHashes[userID]), []byte(DefaultAdminPassword)))
	}
}

func TestSeederAbortsAtomically(t *testing.T) {
	store := newMemoryStore()
	store.failOn = "permission"
	seeder := NewSeeder(store, testLogger(), Config{AdminUsername: "admin"})

	require.Error(t, seeder.Run(context.Background()))
	require.Empty(t, store.modules, "failed seed must leave nothing behind")
	require.Empty(t, store.users)
}
