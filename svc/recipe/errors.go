package recipe

import "errors"

var (
	ErrNotFound       = errors.New("recipe.not_found")
	ErrAuthorNotFound = errors.New("recipe.author_not_found")
	ErrMissingID      = errors.New("recipe.missing_id")
)
