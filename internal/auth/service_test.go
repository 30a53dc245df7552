package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-console/vantage/internal/shared"
)

type memoryAccountRepo struct {
	accounts map[string]Account
	nextID   int64
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: make(map[string]Account)}
}

func (r *memoryAccountRepo) FindByUsername(ctx context.Context, username string) (*Account, error) {
	a, ok := r.accounts[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &a, nil
}

func (r *memoryAccountRepo) CreateAccount(ctx context.Context, username, email, passwordHash string) (Account, error) {
	if _, ok := r.accounts[username]; ok {
		return Account{}, shared.ErrConflict
	}
	r.nextID++
	a := Account{ID: r.nextID, Username: username, Email: email, PasswordHash: passwordHash}
	r.accounts[username] = a
	return a, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newMemoryAccountRepo()
	svc := NewService(repo)

	account, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2hunter2", account.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("hunter2hunter2")))
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewService(newMemoryAccountRepo())

	_, err := svc.Register(context.Background(), "  ", "a@example.com", "some-pass")
	require.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestAuthenticate(t *testing.T) {
	repo := newMemoryAccountRepo()
	svc := NewService(repo)
	_, err := svc.Register(context.Background(), "bob", "bob@example.com", "correct-pass")
	require.NoError(t, err)

	account, err := svc.Authenticate(context.Background(), "bob", "correct-pass")
	require.NoError(t, err)
	require.Equal(t, "bob", account.Username)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	repo := newMemoryAccountRepo()
	svc := NewService(repo)
	_, err := svc.Register(context.Background(), "bob", "bob@example.com", "correct-pass")
	require.NoError(t, err)

	_, wrongPass := svc.Authenticate(context.Background(), "bob", "wrong-pass")
	_, wrongUser := svc.Authenticate(context.Background(), "nobody", "correct-pass")

	require.True(t, errors.Is(wrongPass, shared.ErrInvalidCredentials))
	require.True(t, errors.Is(wrongUser, shared.ErrInvalidCredentials))
	require.Equal(t, wrongPass, wrongUser)
}
