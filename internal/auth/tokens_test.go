package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/vantage-console/vantage/internal/shared"
)

func newTestStore(t *testing.T, ttl time.Duration) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client, ttl), mr
}

func TestTokenIssueAndResolve(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestResolveUnknownToken(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Resolve(context.Background(), "not-a-token")
	require.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestResolveRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 7)
	require.NoError(t, err)

	// Each resolve pushes expiry out by a full TTL, so three forwards of
	// 40 minutes with resolves in between keep the token alive well past
	// the original hour.
	for i := 0; i < 3; i++ {
		mr.FastForward(40 * time.Minute)
		_, err = store.Resolve(ctx, token)
		require.NoError(t, err)
	}

	mr.FastForward(2 * time.Hour)
	_, err = store.Resolve(ctx, token)
	require.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestRevoke(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 9)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, token))
	_, err = store.Resolve(ctx, token)
	require.True(t, errors.Is(err, shared.ErrUnauthorized))

	// revoking twice is harmless
	require.NoError(t, store.Revoke(ctx, token))
}
