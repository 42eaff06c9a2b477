package search

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/dmitrymomot/recipebox/svc/recipe"
)

var ErrEmptyQuery = errors.New("search.empty_query")

// Tab selects what a query is matched against.
type Tab string

const (
	TabTitle      Tab = "title"
	TabIngredient Tab = "ingredient"
	TabAuthor     Tab = "author"
)

var Tabs = []Tab{TabTitle, TabIngredient, TabAuthor}

// ParseTab falls back to TabTitle for anything unknown.
func ParseTab(s string) Tab {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabIngredient, TabAuthor:
		return t
	default:
		return TabTitle
	}
}

// TabURL is the unlocalized search URL for query on tab. The title tab is the
// default and carries no tab parameter.
func TabURL(query string, tab Tab) string {
	v := url.Values{}
	v.Set("q", query)
	if tab != TabTitle {
		v.Set("tab", string(tab))
	}
	return "/search?" + v.Encode()
}

// IngredientMatch is a recipe found by one of its ingredients.
type IngredientMatch struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	ViewCount   int                 `json:"viewCount"`
	Ingredients []recipe.Ingredient `json:"ingredients"`
}

// Result holds the matches for one tab; the other slices stay nil.
type Result struct {
	Type        Tab               `json:"type"`
	Recipes     []recipe.Summary  `json:"recipes,omitempty"`
	Ingredients []IngredientMatch `json:"ingredients,omitempty"`
	Authors     []recipe.Author   `json:"authors,omitempty"`
}

func (r Result) Len() int {
	switch r.Type {
	case TabIngredient:
		return len(r.Ingredients)
	case TabAuthor:
		return len(r.Authors)
	default:
		return len(r.Recipes)
	}
}

func (r Result) Empty() bool { return r.Len() == 0 }

// Backend runs case-insensitive substring matches. query is already trimmed
// and non-empty.
type Backend interface {
	Titles(ctx context.Context, query string, limit int) ([]recipe.Summary, error)
	Ingredients(ctx context.Context, query string, limit int) ([]IngredientMatch, error)
	Authors(ctx context.Context, query string, limit int) ([]recipe.Author, error)
}
