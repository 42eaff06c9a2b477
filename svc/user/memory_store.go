package user

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: map[string]User{}, byEmail: map[string]string{}}
}

func (m *MemoryStore) Get(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStore) Upsert(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byEmail[u.Email]; ok {
		cur := m.byID[id]
		cur.Name = u.Name
		cur.AvatarURL = u.AvatarURL
		if u.Role == RoleAdmin {
			cur.Role = RoleAdmin
		}
		cur.UpdatedAt = u.UpdatedAt
		m.byID[id] = cur
		return cur, nil
	}
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u.ID
	return u, nil
}
