package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/pkg/auth"
	"github.com/dmitrymomot/recipebox/svc/user"
)

func newService(admins ...string) *user.Service {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return user.NewService(user.NewMemoryStore(), user.Config{AdminEmails: admins},
		user.WithClock(func() time.Time { return now }))
}

func TestSignInWithGoogle(t *testing.T) {
	t.Parallel()

	t.Run("creates a user once per email", func(t *testing.T) {
		t.Parallel()
		svc := newService()
		ctx := context.Background()

		first, err := svc.SignInWithGoogle(ctx, auth.Profile{Email: "Cook@Example.com", Name: "Cook"})
		require.NoError(t, err)
		assert.Equal(t, "cook@example.com", first.Email)
		assert.Equal(t, user.RoleUser, first.Role)
		assert.NotEmpty(t, first.ID)

		second, err := svc.SignInWithGoogle(ctx, auth.Profile{Email: "cook@example.com", Name: "Head Cook", AvatarURL: "https://img/a.png"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Head Cook", second.Name)
		assert.Equal(t, "https://img/a.png", second.AvatarURL)

		got, err := svc.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, second, got)
	})

	t.Run("admin emails get the admin role", func(t *testing.T) {
		t.Parallel()
		svc := newService(" Chef@Example.com ")
		u, err := svc.SignInWithGoogle(context.Background(), auth.Profile{Email: "chef@example.com"})
		require.NoError(t, err)
		assert.True(t, u.IsAdmin())
	})

	t.Run("admin role is kept after removal from the list", func(t *testing.T) {
		t.Parallel()
		store := user.NewMemoryStore()
		ctx := context.Background()
		_, err := user.NewService(store, user.Config{AdminEmails: []string{"chef@example.com"}}).
			SignInWithGoogle(ctx, auth.Profile{Email: "chef@example.com"})
		require.NoError(t, err)

		u, err := user.NewService(store, user.Config{}).SignInWithGoogle(ctx, auth.Profile{Email: "chef@example.com"})
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, u.Role)
	})

	t.Run("empty email", func(t *testing.T) {
		t.Parallel()
		_, err := newService().SignInWithGoogle(context.Background(), auth.Profile{})
		assert.ErrorIs(t, err, auth.ErrNoPrimaryEmail)
	})
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()
	svc := newService()
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, user.ErrNotFound)
}
