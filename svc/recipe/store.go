package recipe

import "context"

// Store is the persistence port of the service.
type Store interface {
	LatestRecipes(ctx context.Context, limit int) ([]Summary, error)
	CountRecipes(ctx context.Context) (int, error)
	GetRecipe(ctx context.Context, id string) (Recipe, error)
	CreateRecipe(ctx context.Context, r Recipe) error
	IncrementViews(ctx context.Context, id string) error

	// ListAuthors returns authors with recipe counts; limit <= 0 means all.
	ListAuthors(ctx context.Context, limit int) ([]Author, error)
	GetAuthor(ctx context.Context, id string) (Author, error)
	CreateAuthor(ctx context.Context, a Author) error

	// RecipesByAuthor returns up to limit recipes ordered by created_at desc,
	// id desc, starting strictly after the cursor recipe when cursor is set.
	RecipesByAuthor(ctx context.Context, authorID, cursor string, limit int) ([]Summary, error)
}
