package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the persisted state behind a session token.
type Session struct {
	ID             uuid.UUID         `json:"id"`
	Token          string            `json:"token"`
	UserID         string            `json:"user_id,omitempty"`
	Data           map[string]string `json:"data,omitempty"`
	ExpiresAt      time.Time         `json:"expires_at"`
	LastActivityAt time.Time         `json:"last_activity_at"`
	CreatedAt      time.Time         `json:"created_at"`
}

func newSession(token, userID string, now, expiresAt time.Time) *Session {
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		UserID:         userID,
		Data:           map[string]string{},
		ExpiresAt:      expiresAt,
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

func (s *Session) IsAuthenticated() bool { return s != nil && s.UserID != "" }

func (s *Session) IsExpired() bool { return s != nil && !time.Now().Before(s.ExpiresAt) }

func (s *Session) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.Data[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	if s.Data == nil {
		s.Data = map[string]string{}
	}
	s.Data[key] = value
}

func (s *Session) Delete(key string) { delete(s.Data, key) }

func (s *Session) clone() *Session {
	c := *s
	if s.Data != nil {
		c.Data = make(map[string]string, len(s.Data))
		for k, v := range s.Data {
			c.Data[k] = v
		}
	}
	return &c
}
