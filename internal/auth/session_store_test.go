package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"premam/internal/cache"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return NewSessionStore(client), mr
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := Session{CreatorID: uuid.New(), DisplayName: "Rosy"}
	token, err := store.Create(ctx, session)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := store.Get(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, session.CreatorID, got.CreatorID)
	assert.Equal(t, session.DisplayName, got.DisplayName)

	_, err = store.Get(ctx, "no-such-token")
	assert.Error(t, err)
}

func TestSessionStore_SlidingExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, Session{CreatorID: uuid.New(), DisplayName: "Rosy"})
	assert.NoError(t, err)

	// Touch the session every 20 minutes: each read pushes the idle expiry
	// forward, so the session outlives its original 30 minute window.
	for i := 0; i < 3; i++ {
		mr.FastForward(20 * time.Minute)
		_, err = store.Get(ctx, token)
		assert.NoError(t, err)
	}

	// Left alone past the idle timeout, it expires.
	mr.FastForward(31 * time.Minute)
	_, err = store.Get(ctx, token)
	assert.Error(t, err)
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, Session{CreatorID: uuid.New(), DisplayName: "Rosy"})
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, token))

	_, err = store.Get(ctx, token)
	assert.Error(t, err)

	// Deleting an already-gone token is not an error.
	assert.NoError(t, store.Delete(ctx, token))
}
