package session

import (
	"context"
	"time"
)

// Store persists sessions by token. Get returns ErrSessionNotFound for
// unknown or expired tokens.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	UpdateActivity(ctx context.Context, token string, at time.Time) error
	Delete(ctx context.Context, token string) error
}
