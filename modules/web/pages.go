package web

import (
	"errors"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
	"github.com/dmitrymomot/recipebox/views"
)

func (m *Module) home(ctx handler.Context, _ struct{}) handler.Response {
	h, err := m.recipes.Home(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(m.views.Home(views.HomeData{Home: h}))
}

type RecipeRequest struct {
	ID       string `path:"id"`
	Servings string `query:"servings"`
}

// recipe renders the detail page. DataStar requests only change servings and
// receive the ingredient list; full page loads count as a view.
func (m *Module) recipe(ctx handler.Context, req RecipeRequest) handler.Response {
	r, err := m.recipes.Recipe(ctx, req.ID)
	if err != nil {
		return handler.Error(httpError(err))
	}
	data := views.NewRecipeData(r, recipe.ParseServings(req.Servings))

	if !handler.IsDataStar(ctx.Request()) {
		m.recipes.TrackView(ctx, r.ID)
	}
	return handler.TemplPartial(m.views.Ingredients(data), m.views.Recipe(data),
		handler.WithTarget("#ingredients"))
}

func (m *Module) authors(ctx handler.Context, _ struct{}) handler.Response {
	list, err := m.recipes.Authors(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(m.views.Authors(views.AuthorsData{Authors: list}))
}

type AuthorRequest struct {
	ID     string `path:"id"`
	Cursor string `query:"cursor"`
}

// author renders the author page. "Load more" arrives as a DataStar request
// carrying the cursor and replaces the button with the next page.
func (m *Module) author(ctx handler.Context, req AuthorRequest) handler.Response {
	a, err := m.recipes.Author(ctx, req.ID)
	if err != nil {
		return handler.Error(httpError(err))
	}
	page, err := m.recipes.AuthorRecipes(ctx, a.ID, req.Cursor, recipe.PageLimit)
	if err != nil {
		return handler.Error(httpError(err))
	}
	data := views.AuthorData{Author: a, Recipes: page}
	return handler.TemplPartial(m.views.MoreRecipes(data), m.views.Author(data),
		handler.WithTarget("#load-more"), handler.WithPatchMode(handler.PatchReplace))
}

type SearchRequest struct {
	Query string `query:"q"`
	Tab   string `query:"tab"`
}

func (m *Module) searchPage(ctx handler.Context, req SearchRequest) handler.Response {
	tab := search.ParseTab(req.Tab)
	data := views.SearchData{Query: req.Query, Tab: tab, Tabs: search.Tabs}

	res, err := m.search.Search(ctx, req.Query, tab)
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		data.NoQuery = true
	case err != nil:
		return handler.Error(err)
	default:
		data.Result = res
	}
	return handler.TemplPartial(m.views.SearchResults(data), m.views.Search(data),
		handler.WithTarget("#search-results"))
}

type SignInRequest struct {
	Next string `query:"next"`
}

func (m *Module) signInData(ctx handler.Context, req SignInRequest) (views.SignInData, bool) {
	if _, ok := user.FromContext(ctx); ok {
		return views.SignInData{}, false
	}
	return views.SignInData{
		Next:          handler.SafeRedirectTarget(req.Next, m.views.LocalizedPath(ctx, "/")),
		GoogleEnabled: m.cfg.GoogleEnabled,
	}, true
}

func (m *Module) signIn(ctx handler.Context, req SignInRequest) handler.Response {
	data, ok := m.signInData(ctx, req)
	if !ok {
		return handler.Redirect(m.views.LocalizedPath(ctx, "/"))
	}
	return handler.Templ(m.views.SignIn(data))
}

func (m *Module) signUp(ctx handler.Context, req SignInRequest) handler.Response {
	data, ok := m.signInData(ctx, req)
	if !ok {
		return handler.Redirect(m.views.LocalizedPath(ctx, "/"))
	}
	return handler.Templ(m.views.SignUp(data))
}
