package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/pkg/binder"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/user"
)

func (m *Module) authorRoutes(r chi.Router) {
	path := binder.Path(chi.URLParam)

	r.With(user.UserOnly(m.deny)).Get("/author", handler.Wrap(m.listAuthors,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))
	r.With(user.AdminOnly(m.deny)).Post("/author", handler.Wrap(m.createAuthor,
		handler.WithBinders[handler.Context, recipe.CreateAuthorInput](binder.JSON()),
		handler.WithErrorHandler[handler.Context, recipe.CreateAuthorInput](m.errorHandler),
	))
	r.Get("/author/{authorId}", handler.Wrap(m.getAuthor,
		handler.WithBinders[handler.Context, AuthorRequest](path),
		handler.WithErrorHandler[handler.Context, AuthorRequest](m.errorHandler),
	))
	r.Get("/author/{authorId}/recipes", handler.Wrap(m.authorRecipes,
		handler.WithBinders[handler.Context, AuthorRecipesRequest](path, binder.Query()),
		handler.WithErrorHandler[handler.Context, AuthorRecipesRequest](m.errorHandler),
	))
}

func (m *Module) listAuthors(ctx handler.Context, _ struct{}) handler.Response {
	authors, err := m.recipes.Authors(ctx)
	if err != nil {
		return apiError(err)
	}
	return handler.JSON(authors)
}

func (m *Module) createAuthor(ctx handler.Context, in recipe.CreateAuthorInput) handler.Response {
	a, err := m.recipes.CreateAuthor(ctx, in)
	if err != nil {
		return apiError(err)
	}
	return handler.JSON(Created{Code: 1, ID: a.ID}, handler.WithJSONStatus(http.StatusCreated))
}

type AuthorRequest struct {
	ID string `path:"authorId"`
}

func (m *Module) getAuthor(ctx handler.Context, req AuthorRequest) handler.Response {
	a, err := m.recipes.Author(ctx, req.ID)
	if err != nil {
		return apiError(err)
	}
	return handler.JSON(a)
}

type AuthorRecipesRequest struct {
	ID     string `path:"authorId"`
	Cursor string `query:"cursor"`
	Limit  string `query:"limit"`
}

func (m *Module) authorRecipes(ctx handler.Context, req AuthorRecipesRequest) handler.Response {
	// Unparsable limits fall back to the page default.
	limit, _ := strconv.Atoi(req.Limit)
	page, err := m.recipes.AuthorRecipes(ctx, req.ID, req.Cursor, limit)
	if err != nil {
		return apiError(err)
	}
	return handler.JSON(page)
}
