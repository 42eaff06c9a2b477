// Package user keeps signed-in accounts and the guards that protect
// user-only and admin-only routes.
package user

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var ErrNotFound = errors.New("user.not_found")

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Store persists users.
type Store interface {
	Get(ctx context.Context, id string) (User, error)
	// Upsert inserts u or updates the row with the same email. An existing
	// ADMIN role is never downgraded. It returns the stored row.
	Upsert(ctx context.Context, u User) (User, error)
}

type userContextKey struct{}

func WithContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userContextKey{}).(User)
	return u, ok
}
