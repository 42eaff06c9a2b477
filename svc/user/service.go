package user

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/recipebox/pkg/auth"
	"github.com/dmitrymomot/recipebox/pkg/logger"
)

type Config struct {
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`
}

type Service struct {
	store  Store
	admins []string
	log    *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, cfg Config, opts ...Option) *Service {
	s := &Service{store: store, log: logger.Discard(), now: time.Now}
	for _, e := range cfg.AdminEmails {
		if e = normalizeEmail(e); e != "" {
			s.admins = append(s.admins, e)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// SignInWithGoogle creates or refreshes the account for a Google profile.
func (s *Service) SignInWithGoogle(ctx context.Context, p auth.Profile) (User, error) {
	email := normalizeEmail(p.Email)
	if email == "" {
		return User{}, auth.ErrNoPrimaryEmail
	}
	role := RoleUser
	if slices.Contains(s.admins, email) {
		role = RoleAdmin
	}
	now := s.now().UTC()
	u, err := s.store.Upsert(ctx, User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return User{}, err
	}
	s.log.InfoContext(ctx, "user signed in", logger.UserID(u.ID), slog.String("role", string(u.Role)))
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.store.Get(ctx, id)
}
