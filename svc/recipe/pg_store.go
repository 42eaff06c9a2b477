package recipe

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/recipebox/pkg/pg"
)

// PGStore implements Store on PostgreSQL.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const summaryColumns = `
	r.id, r.title, r.thumbnail_url, r.tags, r.serving, r.view_count, r.tip, a.name,
	(SELECT count(*) FROM likes l WHERE l.recipe_id = r.id)`

func scanSummaries(rows pgx.Rows) ([]Summary, error) {
	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.ThumbnailURL, &s.Tags, &s.Serving,
			&s.ViewCount, &s.Tip, &s.AuthorName, &s.Likes); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (s *PGStore) LatestRecipes(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `SELECT`+summaryColumns+`
		FROM recipes r JOIN authors a ON a.id = r.author_id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("latest recipes: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func (s *PGStore) CountRecipes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM recipes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return n, nil
}

func (s *PGStore) GetRecipe(ctx context.Context, id string) (Recipe, error) {
	var r Recipe
	err := s.db.QueryRow(ctx, `
		SELECT r.id, r.title, r.author_id, r.youtube_url, r.ingredients, r.steps, r.tags,
			r.thumbnail_url, r.serving, r.view_count, r.tip, r.user_id, r.created_at, r.updated_at,
			a.name, a.image_url,
			(SELECT count(*) FROM likes l WHERE l.recipe_id = r.id)
		FROM recipes r JOIN authors a ON a.id = r.author_id
		WHERE r.id = $1`, id).Scan(
		&r.ID, &r.Title, &r.AuthorID, &r.YoutubeURL, &r.Ingredients, &r.Steps, &r.Tags,
		&r.ThumbnailURL, &r.Serving, &r.ViewCount, &r.Tip, &r.UserID, &r.CreatedAt, &r.UpdatedAt,
		&r.Author.Name, &r.Author.ImageURL, &r.Likes)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Recipe{}, ErrNotFound
		}
		return Recipe{}, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

func (s *PGStore) CreateRecipe(ctx context.Context, r Recipe) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO recipes (id, title, author_id, youtube_url, ingredients, steps, tags,
			thumbnail_url, serving, tip, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		r.ID, r.Title, r.AuthorID, r.YoutubeURL, r.Ingredients, r.Steps, r.Tags,
		r.ThumbnailURL, r.Serving, r.Tip, r.UserID, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return ErrAuthorNotFound
		}
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (s *PGStore) IncrementViews(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `UPDATE recipes SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const authorColumns = `
	a.id, a.name, a.image_url, a.youtube_url, a.youtube_id, a.created_at, a.updated_at,
	(SELECT count(*) FROM recipes r WHERE r.author_id = a.id)`

func scanAuthor(row pgx.Row) (Author, error) {
	var a Author
	err := row.Scan(&a.ID, &a.Name, &a.ImageURL, &a.YoutubeURL, &a.YoutubeID,
		&a.CreatedAt, &a.UpdatedAt, &a.RecipeCount)
	return a, err
}

func (s *PGStore) ListAuthors(ctx context.Context, limit int) ([]Author, error) {
	q := `SELECT` + authorColumns + ` FROM authors a ORDER BY a.created_at, a.id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	out := []Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PGStore) GetAuthor(ctx context.Context, id string) (Author, error) {
	a, err := scanAuthor(s.db.QueryRow(ctx, `SELECT`+authorColumns+` FROM authors a WHERE a.id = $1`, id))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Author{}, ErrAuthorNotFound
		}
		return Author{}, fmt.Errorf("get author: %w", err)
	}
	return a, nil
}

func (s *PGStore) CreateAuthor(ctx context.Context, a Author) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO authors (id, name, image_url, youtube_url, youtube_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Name, a.ImageURL, a.YoutubeURL, a.YoutubeID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

// RecipesByAuthor uses keyset pagination on (created_at, id). An unknown
// cursor yields no rows.
func (s *PGStore) RecipesByAuthor(ctx context.Context, authorID, cursor string, limit int) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `SELECT`+summaryColumns+`
		FROM recipes r JOIN authors a ON a.id = r.author_id
		WHERE r.author_id = $1
		  AND ($2 = '' OR (r.created_at, r.id) < (SELECT c.created_at, c.id FROM recipes c WHERE c.id = $2))
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $3`, authorID, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("recipes by author: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}
