package recipe

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[string]Recipe
	authors map[string]Author
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recipes: make(map[string]Recipe),
		authors: make(map[string]Author),
	}
}

// newestFirst orders by created_at desc, then id desc.
func newestFirst(a, b Recipe) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

func (m *MemoryStore) sorted(filter func(Recipe) bool) []Recipe {
	out := make([]Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		if filter == nil || filter(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, newestFirst)
	return out
}

func (m *MemoryStore) withAuthor(r Recipe) Recipe {
	if a, ok := m.authors[r.AuthorID]; ok {
		r.Author = AuthorRef{Name: a.Name, ImageURL: a.ImageURL}
	}
	return r
}

func (m *MemoryStore) LatestRecipes(_ context.Context, limit int) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.sorted(nil)
	out := make([]Summary, 0, min(limit, len(all)))
	for _, r := range all[:min(limit, len(all))] {
		out = append(out, m.withAuthor(r).Summary())
	}
	return out, nil
}

func (m *MemoryStore) CountRecipes(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recipes), nil
}

func (m *MemoryStore) GetRecipe(_ context.Context, id string) (Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.recipes[id]
	if !ok {
		return Recipe{}, ErrNotFound
	}
	return m.withAuthor(r), nil
}

func (m *MemoryStore) CreateRecipe(_ context.Context, r Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.authors[r.AuthorID]; !ok {
		return ErrAuthorNotFound
	}
	m.recipes[r.ID] = r
	return nil
}

func (m *MemoryStore) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recipes[id]
	if !ok {
		return ErrNotFound
	}
	r.ViewCount++
	m.recipes[id] = r
	return nil
}

// Like adds one like to the recipe.
func (m *MemoryStore) Like(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.recipes[id]; ok {
		r.Likes++
		m.recipes[id] = r
	}
}

func (m *MemoryStore) ListAuthors(_ context.Context, limit int) ([]Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Author, 0, len(m.authors))
	for _, a := range m.authors {
		out = append(out, m.countRecipes(a))
	}
	slices.SortFunc(out, func(a, b Author) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) countRecipes(a Author) Author {
	a.RecipeCount = 0
	for _, r := range m.recipes {
		if r.AuthorID == a.ID {
			a.RecipeCount++
		}
	}
	return a
}

func (m *MemoryStore) GetAuthor(_ context.Context, id string) (Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.authors[id]
	if !ok {
		return Author{}, ErrAuthorNotFound
	}
	return m.countRecipes(a), nil
}

func (m *MemoryStore) CreateAuthor(_ context.Context, a Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authors[a.ID] = a
	return nil
}

func (m *MemoryStore) RecipesByAuthor(_ context.Context, authorID, cursor string, limit int) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.sorted(func(r Recipe) bool { return r.AuthorID == authorID })
	if cursor != "" {
		i := slices.IndexFunc(rows, func(r Recipe) bool { return r.ID == cursor })
		if i < 0 {
			return []Summary{}, nil
		}
		rows = rows[i+1:]
	}
	rows = rows[:min(limit, len(rows))]
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, m.withAuthor(r).Summary())
	}
	return out, nil
}

// All returns every recipe, newest first.
func (m *MemoryStore) All() []Recipe {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.sorted(nil)
	for i := range rows {
		rows[i] = m.withAuthor(rows[i])
	}
	return rows
}
