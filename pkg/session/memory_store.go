package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	done     chan struct{}
	once     sync.Once
}

// NewMemoryStore creates a store. A positive cleanupInterval starts a
// goroutine that drops expired sessions until Close is called.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.cleanupLoop(cleanupInterval)
	}
	return m
}

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	m.sessions[s.Token] = s.clone()
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok || s.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return s.clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.Token]; !ok {
		return ErrSessionNotFound
	}
	m.sessions[s.Token] = s.clone()
	return nil
}

func (m *MemoryStore) UpdateActivity(_ context.Context, token string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	s.LastActivityAt = at
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// Len reports stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// DeleteExpired removes every expired session.
func (m *MemoryStore) DeleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.IsExpired() {
			delete(m.sessions, token)
		}
	}
}

func (m *MemoryStore) Close() error {
	m.once.Do(func() { close(m.done) })
	return nil
}

func (m *MemoryStore) cleanupLoop(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			m.DeleteExpired()
		case <-m.done:
			return
		}
	}
}
