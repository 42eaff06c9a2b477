package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/pkg/binder"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
)

func (m *Module) recipeRoutes(r chi.Router) {
	r.Get("/main", handler.Wrap(m.main,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))
	r.Get("/recipe", handler.Wrap(m.getRecipe,
		handler.WithBinders[handler.Context, RecipeRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, RecipeRequest](m.errorHandler),
	))
	r.With(user.AdminOnly(m.deny)).Post("/recipe", handler.Wrap(m.createRecipe,
		handler.WithBinders[handler.Context, recipe.CreateRecipeInput](binder.JSON()),
		handler.WithErrorHandler[handler.Context, recipe.CreateRecipeInput](m.errorHandler),
	))
}

func (m *Module) main(ctx handler.Context, _ struct{}) handler.Response {
	h, err := m.recipes.Home(ctx)
	if err != nil {
		return apiError(err)
	}
	return handler.JSON(h)
}

type RecipeRequest struct {
	ID string `query:"recipeId"`
}

func (m *Module) getRecipe(ctx handler.Context, req RecipeRequest) handler.Response {
	r, err := m.recipes.Recipe(ctx, req.ID)
	if err != nil {
		return apiError(err)
	}
	m.recipes.TrackView(ctx, r.ID)
	return handler.JSON(r)
}

func (m *Module) createRecipe(ctx handler.Context, in recipe.CreateRecipeInput) handler.Response {
	u, _ := user.FromContext(ctx)
	r, err := m.recipes.CreateRecipe(ctx, u.ID, in)
	if err != nil {
		return apiError(err)
	}
	return handler.JSON(Created{Code: 1, ID: r.ID}, handler.WithJSONStatus(http.StatusCreated))
}

type SearchRequest struct {
	Query string `query:"q"`
	Tab   string `query:"tab"`
}

func (m *Module) searchRecipes(ctx handler.Context, req SearchRequest) handler.Response {
	res, err := m.search.Search(ctx, req.Query, search.ParseTab(req.Tab))
	if err != nil {
		return apiError(err)
	}
	return handler.JSON(res, handler.WithJSONMeta(map[string]any{"total": res.Len()}))
}
