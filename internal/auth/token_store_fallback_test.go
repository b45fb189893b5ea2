package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// With an unhealthy Redis, the fallback store must serve everything from
// its local copy.
func TestFallbackStoreLocalOnly(t *testing.T) {
	store := NewFallbackTokenStore(nil, "test", func() bool { return false }, zap.NewNop())
	ctx := context.Background()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	cred := &Credential{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, cred))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "at-1", got.AccessToken)
	assert.Equal(t, "rt-1", got.RefreshToken)

	newExpiry := time.Now().Add(2 * time.Hour)
	require.NoError(t, store.UpdateAccess(ctx, "at-2", newExpiry))

	got, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "at-2", got.AccessToken)
	assert.Equal(t, "rt-1", got.RefreshToken)
	assert.WithinDuration(t, newExpiry, got.ExpiresAt, time.Second)

	require.NoError(t, store.Delete(ctx))
	_, err = store.Get(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)
}

// Mutating the returned credential must not leak into the stored copy.
func TestFallbackStoreReturnsCopies(t *testing.T) {
	store := NewFallbackTokenStore(nil, "test", func() bool { return false }, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Credential{AccessToken: "at-1"}))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	got.AccessToken = "mutated"

	again, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "at-1", again.AccessToken)
}
