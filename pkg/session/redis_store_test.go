package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/pkg/session"
)

func newRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, "test:"), mr
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t)
	ctx := context.Background()

	s := &session.Session{
		Token:     "tok",
		UserID:    "u1",
		Data:      map[string]string{"k": "v"},
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Create(ctx, s))
	assert.True(t, mr.Exists("test:tok"))
	ttl := mr.TTL("test:tok")
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "v", got.Data["k"])

	at := time.Now().Add(time.Minute).Truncate(time.Second)
	require.NoError(t, store.UpdateActivity(ctx, "tok", at))
	got, err = store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, at.Equal(got.LastActivityAt))

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRedisStoreUpdateMissing(t *testing.T) {
	t.Parallel()

	store, _ := newRedisStore(t)
	err := store.Update(context.Background(), &session.Session{Token: "nope", ExpiresAt: time.Now().Add(time.Minute)})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	err = store.Create(context.Background(), &session.Session{Token: "old", ExpiresAt: time.Now().Add(-time.Minute)})
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestRedisStoreExpiresWithTTL(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &session.Session{Token: "t", ExpiresAt: time.Now().Add(time.Minute)}))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "t")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
