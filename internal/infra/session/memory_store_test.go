package session

import (
	"context"
	"testing"
	"time"

	"bookkeep/internal/domain/entity"
	"bookkeep/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *entity.User {
	return &entity.User{
		ID:       7,
		Username: "group",
		Role:     entity.RoleGroupUser,
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := newMemoryStore(time.Hour, nil)
	ctx := context.Background()

	created, err := store.Create(ctx, testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), created.ExpiresAt, time.Minute)

	got, err := store.Get(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "group", got.Username)
	assert.Equal(t, entity.RoleGroupUser, got.Role)
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	store := newMemoryStore(time.Hour, nil)
	ctx := context.Background()

	first, err := store.Create(ctx, testUser())
	require.NoError(t, err)
	second, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := newMemoryStore(time.Hour, nil)

	_, err := store.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestMemoryStore_ExpiredSessionDropped(t *testing.T) {
	store := newMemoryStore(-time.Minute, nil)
	ctx := context.Background()

	created, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	_, err = store.Get(ctx, created.Token)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	// The expired entry is gone, not just hidden.
	store.mu.RLock()
	_, stillThere := store.sessions[created.Token]
	store.mu.RUnlock()
	assert.False(t, stillThere)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := newMemoryStore(time.Hour, nil)
	ctx := context.Background()

	created, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.Token))

	_, err = store.Get(ctx, created.Token)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)

	// Deleting an unknown token is a no-op.
	assert.NoError(t, store.Delete(ctx, "no-such-token"))
}

func TestMemoryStore_RemoveExpired(t *testing.T) {
	store := newMemoryStore(time.Hour, nil)
	ctx := context.Background()

	live, err := store.Create(ctx, testUser())
	require.NoError(t, err)

	stale, err := store.Create(ctx, testUser())
	require.NoError(t, err)
	store.mu.Lock()
	store.sessions[stale.Token].ExpiresAt = time.Now().Add(-time.Minute)
	store.mu.Unlock()

	removed, remaining := store.removeExpired(time.Now())
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, remaining)

	_, err = store.Get(ctx, live.Token)
	assert.NoError(t, err)
	_, err = store.Get(ctx, stale.Token)
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}
