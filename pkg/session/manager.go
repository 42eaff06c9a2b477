package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/recipebox/pkg/logger"
)

// Manager ties a Store and a Transport together.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	log       *slog.Logger
	now       func() time.Time
}

type Option func(*Manager)

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

func New(store Store, transport Transport, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		transport: transport,
		config:    DefaultConfig(),
		log:       logger.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get loads the session referenced by the request token.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, token)
}

// Ensure returns the current session or starts an anonymous one.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if s, err := m.Get(ctx, r); err == nil {
		return s, nil
	}
	return m.start(ctx, w, "")
}

// Authenticate binds userID to a fresh token. Data from the previous session
// is carried over and the old token is revoked.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID string) (*Session, error) {
	prev, err := m.Get(ctx, r)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	s, err := m.start(ctx, w, userID)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		s.Data = prev.Data
		if err := m.store.Update(ctx, s); err != nil {
			return nil, err
		}
		if err := m.store.Delete(ctx, prev.Token); err != nil {
			m.log.WarnContext(ctx, "revoke previous session", logger.Error(err))
		}
	}
	return s, nil
}

// Save persists changes made to s.Data.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.store.Update(ctx, s)
}

// Destroy removes the session and clears the token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	m.transport.ClearToken(w)
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, token)
}

// Middleware puts the current session, if any, into the request context and
// slides its idle expiry once ActivityUpdateThreshold has passed.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Get(r.Context(), r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if m.now().Sub(s.LastActivityAt) >= m.config.ActivityUpdateThreshold {
			m.touch(r.Context(), w, s)
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

func (m *Manager) touch(ctx context.Context, w http.ResponseWriter, s *Session) {
	now := m.now()
	idle, maxLife := m.config.timeouts(s.IsAuthenticated())
	s.LastActivityAt = now
	s.ExpiresAt = expiry(s.CreatedAt, now, idle, maxLife)
	if err := m.store.Update(ctx, s); err != nil {
		m.log.WarnContext(ctx, "update session activity", logger.Error(err))
		return
	}
	if err := m.transport.SetToken(w, s.Token, s.ExpiresAt.Sub(now)); err != nil {
		m.log.WarnContext(ctx, "refresh session cookie", logger.Error(err))
	}
}

func (m *Manager) start(ctx context.Context, w http.ResponseWriter, userID string) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	now := m.now()
	idle, maxLife := m.config.timeouts(userID != "")
	s := newSession(token, userID, now, expiry(now, now, idle, maxLife))
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, token, s.ExpiresAt.Sub(now)); err != nil {
		_ = m.store.Delete(ctx, token)
		return nil, err
	}
	return s, nil
}

// expiry is the earlier of the idle deadline and the absolute lifetime.
func expiry(createdAt, now time.Time, idle, maxLife time.Duration) time.Time {
	idleAt := now.Add(idle)
	if maxAt := createdAt.Add(maxLife); maxAt.Before(idleAt) {
		return maxAt
	}
	return idleAt
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
