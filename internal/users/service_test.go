package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-console/vantage/internal/shared"
)

type memoryUserRepo struct {
	users  map[int64]User
	hashes map[int64]string
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[int64]User), hashes: make(map[int64]string)}
}

func (r *memoryUserRepo) List(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUserRepo) Get(ctx context.Context, id int64) (Detail, error) {
	u, ok := r.users[id]
	if !ok {
		return Detail{}, shared.ErrNotFound
	}
	return Detail{User: u}, nil
}

func (r *memoryUserRepo) Create(ctx context.Context, username, email, passwordHash string) (User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return User{}, shared.ErrConflict
		}
	}
	r.nextID++
	u := User{ID: r.nextID, Username: username, Email: email}
	r.users[u.ID] = u
	r.hashes[u.ID] = passwordHash
	return u, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, id int64, username, email, passwordHash string) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	u.Username, u.Email = username, email
	if passwordHash != "" {
		r.hashes[id] = passwordHash
	}
	r.users[id] = u
	return u, nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func TestCreateHashesPassword(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	hash := repo.hashes[u.ID]
	require.NotEqual(t, "s3cret-pass", hash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-pass")))
}

func TestCreateRequiresAllFields(t *testing.T) {
	svc := NewService(newMemoryUserRepo())

	for _, tc := range [][3]string{
		{"", "a@example.com", "pass"},
		{"alice", "", "pass"},
		{"alice", "a@example.com", ""},
	} {
		_, err := svc.Create(context.Background(), tc[0], tc[1], tc[2])
		require.True(t, errors.Is(err, shared.ErrInvalidInput))
	}
}

func TestCreateDuplicateUsernameConflicts(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "alice", "alice@example.com", "pass-one")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "alice", "other@example.com", "pass-two")
	require.True(t, errors.Is(err, shared.ErrConflict))
}

func TestUpdateKeepsPasswordWhenBlank(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), "bob", "bob@example.com", "original-pass")
	require.NoError(t, err)
	before := repo.hashes[u.ID]

	_, err = svc.Update(context.Background(), u.ID, "bobby", "bob@example.com", "")
	require.NoError(t, err)
	require.Equal(t, before, repo.hashes[u.ID])

	_, err = svc.Update(context.Background(), u.ID, "bobby", "bob@example.com", "rotated-pass")
	require.NoError(t, err)
	require.NotEqual(t, before, repo.hashes[u.ID])
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.hashes[u.ID]), []byte("rotated-pass")))
}

func TestDeleteRejectsSelfDeletion(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), "carol", "carol@example.com", "some-pass")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), u.ID, u.ID)
	require.True(t, errors.Is(err, shared.ErrSelfDeletion))
	_, ok := repo.users[u.ID]
	require.True(t, ok, "account must survive a self-deletion attempt")
}

func TestDeleteByAnotherCaller(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), "dave", "dave@example.com", "some-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), u.ID, u.ID+1))
	require.True(t, errors.Is(svc.Delete(context.Background(), u.ID, u.ID+1), shared.ErrNotFound))
}
