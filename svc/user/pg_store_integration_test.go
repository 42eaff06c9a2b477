//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/internal/testpg"
	"github.com/dmitrymomot/recipebox/svc/user"
)

func TestPGStore(t *testing.T) {
	store := user.NewPGStore(testpg.New(t))
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	created, err := store.Upsert(ctx, user.User{
		ID: "u1", Email: "chef@example.com", Name: "Chef", Role: user.RoleAdmin,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", created.ID)

	updated, err := store.Upsert(ctx, user.User{
		ID: "u2", Email: "chef@example.com", Name: "Chef Baek", Role: user.RoleUser,
		CreatedAt: now, UpdatedAt: now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", updated.ID)
	assert.Equal(t, "Chef Baek", updated.Name)
	assert.Equal(t, user.RoleAdmin, updated.Role)

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Chef Baek", got.Name)

	_, err = store.Get(ctx, "u2")
	assert.ErrorIs(t, err, user.ErrNotFound)
}
