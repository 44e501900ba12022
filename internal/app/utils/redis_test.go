package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreDisabled(t *testing.T) {
	ctx := context.Background()
	for name, store := range map[string]*TokenStore{
		"nil store":  nil,
		"nil client": NewTokenStore(nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, store.Enabled())
			require.NoError(t, store.Revoke(ctx, "jti", time.Hour))
			revoked, err := store.IsRevoked(ctx, "jti")
			require.NoError(t, err)
			assert.False(t, revoked)
		})
	}
}

func newMiniredisStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client), mr
}

func TestTokenStoreRevoke(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniredisStore(t)
	require.True(t, store.Enabled())

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL(revokedPrefix+"jti-1"))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	// already expired tokens and tokens without an id are not stored
	require.NoError(t, store.Revoke(ctx, "jti-3", 0))
	require.NoError(t, store.Revoke(ctx, "", time.Minute))
	assert.Equal(t, []string{revokedPrefix + "jti-1"}, mr.Keys())

	mr.FastForward(time.Minute + time.Second)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStoreUnreachable(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniredisStore(t)
	mr.Close()

	_, err := store.IsRevoked(ctx, "jti-1")
	assert.Error(t, err)
	assert.Error(t, store.Revoke(ctx, "jti-1", time.Minute))
}

func TestNewRedisClientUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
