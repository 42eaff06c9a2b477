package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/recipebox/svc/recipe"
)

// PGBackend matches with ILIKE. The pg_trgm indexes from the migrations keep
// the leading-wildcard patterns usable.
type PGBackend struct {
	db *pgxpool.Pool
}

func NewPGBackend(db *pgxpool.Pool) *PGBackend { return &PGBackend{db: db} }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

func (b *PGBackend) Titles(ctx context.Context, query string, limit int) ([]recipe.Summary, error) {
	rows, err := b.db.Query(ctx, `
		SELECT r.id, r.title, r.thumbnail_url, r.tags, r.serving, r.view_count, r.tip, a.name,
			(SELECT count(*) FROM likes l WHERE l.recipe_id = r.id)
		FROM recipes r JOIN authors a ON a.id = r.author_id
		WHERE r.title ILIKE $1
		ORDER BY r.view_count DESC, r.created_at DESC, r.id DESC
		LIMIT $2`, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("title search: %w", err)
	}
	defer rows.Close()

	out := []recipe.Summary{}
	for rows.Next() {
		var s recipe.Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.ThumbnailURL, &s.Tags, &s.Serving,
			&s.ViewCount, &s.Tip, &s.AuthorName, &s.Likes); err != nil {
			return nil, fmt.Errorf("title search: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (b *PGBackend) Ingredients(ctx context.Context, query string, limit int) ([]IngredientMatch, error) {
	rows, err := b.db.Query(ctx, `
		SELECT r.id, r.title, r.view_count, r.ingredients
		FROM recipes r
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(r.ingredients) AS i
			WHERE i->>'name' ILIKE $1
		)
		ORDER BY r.view_count DESC, r.created_at DESC, r.id DESC
		LIMIT $2`, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("ingredient search: %w", err)
	}
	defer rows.Close()

	out := []IngredientMatch{}
	for rows.Next() {
		var m IngredientMatch
		if err := rows.Scan(&m.ID, &m.Title, &m.ViewCount, &m.Ingredients); err != nil {
			return nil, fmt.Errorf("ingredient search: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (b *PGBackend) Authors(ctx context.Context, query string, limit int) ([]recipe.Author, error) {
	rows, err := b.db.Query(ctx, `
		SELECT a.id, a.name, a.image_url, a.youtube_url, a.youtube_id, a.created_at, a.updated_at,
			(SELECT count(*) FROM recipes r WHERE r.author_id = a.id)
		FROM authors a
		WHERE a.name ILIKE $1
		ORDER BY a.name, a.id
		LIMIT $2`, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("author search: %w", err)
	}
	defer rows.Close()

	out := []recipe.Author{}
	for rows.Next() {
		var a recipe.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.ImageURL, &a.YoutubeURL, &a.YoutubeID,
			&a.CreatedAt, &a.UpdatedAt, &a.RecipeCount); err != nil {
			return nil, fmt.Errorf("author search: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
