package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/opensearch-project/opensearch-go/v2"

	pkgopensearch "github.com/dmitrymomot/recipebox/pkg/opensearch"
	"github.com/dmitrymomot/recipebox/svc/recipe"
)

// IndexMapping is the recipe index definition.
const IndexMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "title":        {"type": "text"},
      "thumbnailUrl": {"type": "keyword", "index": false},
      "tags":         {"type": "keyword"},
      "serving":      {"type": "integer"},
      "viewCount":    {"type": "integer"},
      "tip":          {"type": "text", "index": false},
      "authorName":   {"type": "text"},
      "likes":        {"type": "integer"},
      "ingredients": {
        "properties": {
          "name":   {"type": "text"},
          "amount": {"type": "keyword", "index": false},
          "unit":   {"type": "keyword", "index": false}
        }
      },
      "createdAt":    {"type": "date"}
    }
  }
}`

type document struct {
	recipe.Summary
	Ingredients []recipe.Ingredient `json:"ingredients"`
	CreatedAt   string              `json:"createdAt"`
}

// OpenSearchBackend serves title and ingredient queries from an index.
// Author queries go to the fallback backend.
type OpenSearchBackend struct {
	client   *opensearch.Client
	index    string
	fallback Backend
}

func NewOpenSearchBackend(client *opensearch.Client, index string, fallback Backend) *OpenSearchBackend {
	return &OpenSearchBackend{client: client, index: index, fallback: fallback}
}

// EnsureIndex creates the recipe index when missing.
func (b *OpenSearchBackend) EnsureIndex(ctx context.Context) error {
	return pkgopensearch.EnsureIndex(ctx, b.client, b.index, IndexMapping)
}

// Index writes r, replacing any earlier version.
func (b *OpenSearchBackend) Index(ctx context.Context, r recipe.Recipe) error {
	body, err := json.Marshal(document{
		Summary:     r.Summary(),
		Ingredients: r.Ingredients,
		CreatedAt:   r.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	})
	if err != nil {
		return err
	}
	res, err := b.client.Index(b.index, bytes.NewReader(body),
		b.client.Index.WithContext(ctx),
		b.client.Index.WithDocumentID(r.ID),
	)
	if err != nil {
		return errors.Join(pkgopensearch.ErrIndexFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%w: index %s: %s", pkgopensearch.ErrIndexFailed, r.ID, msg)
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (b *OpenSearchBackend) search(ctx context.Context, field, query string, limit int) ([]document, error) {
	body, err := json.Marshal(map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{field},
				"type":   "phrase_prefix",
			},
		},
		"sort": []any{"_score", map[string]string{"viewCount": "desc"}},
	})
	if err != nil {
		return nil, err
	}
	res, err := b.client.Search(
		b.client.Search.WithContext(ctx),
		b.client.Search.WithIndex(b.index),
		b.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("opensearch %s: %s", res.Status(), msg)
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	docs := make([]document, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}

func (b *OpenSearchBackend) Titles(ctx context.Context, query string, limit int) ([]recipe.Summary, error) {
	docs, err := b.search(ctx, "title", query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]recipe.Summary, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Summary)
	}
	return out, nil
}

func (b *OpenSearchBackend) Ingredients(ctx context.Context, query string, limit int) ([]IngredientMatch, error) {
	docs, err := b.search(ctx, "ingredients.name", query, limit)
	if err != nil {
		return nil, err
	}
	out := make([]IngredientMatch, 0, len(docs))
	for _, d := range docs {
		out = append(out, IngredientMatch{ID: d.ID, Title: d.Title, ViewCount: d.ViewCount, Ingredients: d.Ingredients})
	}
	return out, nil
}

func (b *OpenSearchBackend) Authors(ctx context.Context, query string, limit int) ([]recipe.Author, error) {
	return b.fallback.Authors(ctx, query, limit)
}
