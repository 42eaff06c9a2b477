package search

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dmitrymomot/recipebox/svc/recipe"
)

// RecipeSource is what the in-memory backend scans.
type RecipeSource interface {
	All() []recipe.Recipe
	ListAuthors(ctx context.Context, limit int) ([]recipe.Author, error)
}

// MemoryBackend scans a RecipeSource. Used in development and tests.
type MemoryBackend struct {
	src RecipeSource
}

func NewMemoryBackend(src RecipeSource) *MemoryBackend {
	return &MemoryBackend{src: src}
}

// byViews orders like the Postgres backend: most viewed first, newest first
// on ties.
func (b *MemoryBackend) byViews() []recipe.Recipe {
	all := b.src.All()
	slices.SortStableFunc(all, func(x, y recipe.Recipe) int { return cmp.Compare(y.ViewCount, x.ViewCount) })
	return all
}

func contains(s, query string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

func (b *MemoryBackend) Titles(_ context.Context, query string, limit int) ([]recipe.Summary, error) {
	out := []recipe.Summary{}
	for _, r := range b.byViews() {
		if len(out) == limit {
			break
		}
		if contains(r.Title, query) {
			out = append(out, r.Summary())
		}
	}
	return out, nil
}

func (b *MemoryBackend) Ingredients(_ context.Context, query string, limit int) ([]IngredientMatch, error) {
	out := []IngredientMatch{}
	for _, r := range b.byViews() {
		if len(out) == limit {
			break
		}
		for _, ing := range r.Ingredients {
			if contains(ing.Name, query) {
				out = append(out, IngredientMatch{ID: r.ID, Title: r.Title, ViewCount: r.ViewCount, Ingredients: r.Ingredients})
				break
			}
		}
	}
	return out, nil
}

func (b *MemoryBackend) Authors(ctx context.Context, query string, limit int) ([]recipe.Author, error) {
	all, err := b.src.ListAuthors(ctx, 0)
	if err != nil {
		return nil, err
	}
	out := []recipe.Author{}
	for _, a := range all {
		if len(out) == limit {
			break
		}
		if contains(a.Name, query) {
			out = append(out, a)
		}
	}
	return out, nil
}
