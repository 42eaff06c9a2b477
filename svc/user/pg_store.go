package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/recipebox/pkg/pg"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

const userColumns = `id, email, name, avatar_url, role, created_at, updated_at`

func (s *PGStore) Get(ctx context.Context, id string) (User, error) {
	var u User
	err := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *PGStore) Upsert(ctx context.Context, u User) (User, error) {
	var out User
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (id, email, name, avatar_url, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url,
			role = CASE WHEN EXCLUDED.role = 'ADMIN' THEN 'ADMIN' ELSE users.role END,
			updated_at = EXCLUDED.updated_at
		RETURNING `+userColumns,
		u.ID, u.Email, u.Name, u.AvatarURL, u.Role, u.CreatedAt, u.UpdatedAt).
		Scan(&out.ID, &out.Email, &out.Name, &out.AvatarURL, &out.Role, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return User{}, fmt.Errorf("upsert user: %w", err)
	}
	return out, nil
}
