package views

import (
	"net/url"

	"github.com/dmitrymomot/recipebox/pkg/i18n"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
)

// View is what every template receives. Data holds the page specific value.
type View struct {
	Locale  i18n.Locale
	Lang    string
	Locales []i18n.Locale
	Path    string
	Query   string
	User    *user.User
	Data    any
}

func (v View) IsAdmin() bool { return v.User != nil && v.User.IsAdmin() }

type recipeCard struct {
	Locale i18n.Locale
	Recipe recipe.Summary
}

type authorCard struct {
	Locale i18n.Locale
	Author recipe.Author
}

type HomeData struct {
	recipe.Home
}

type RecipeData struct {
	Recipe      recipe.Recipe
	Servings    float64
	Ingredients []recipe.Ingredient
	Presets     []int
}

func NewRecipeData(r recipe.Recipe, servings float64) RecipeData {
	servings = recipe.ClampServings(servings)
	return RecipeData{
		Recipe:      r,
		Servings:    servings,
		Ingredients: recipe.ScaleIngredients(r.Ingredients, servings),
		Presets:     recipe.ServingPresets,
	}
}

// Fewer and More are the servings behind the minus and plus buttons.
func (d RecipeData) Fewer() float64 { return recipe.ClampServings(d.Servings - recipe.ServingsStep) }
func (d RecipeData) More() float64  { return recipe.ClampServings(d.Servings + recipe.ServingsStep) }

func (d RecipeData) CanFewer() bool { return d.Servings > recipe.MinServings }
func (d RecipeData) CanMore() bool  { return d.Servings < recipe.MaxServings }

type AuthorsData struct {
	Authors []recipe.Author
}

type AuthorData struct {
	Author  recipe.Author
	Recipes recipe.Page
}

type SearchData struct {
	Query  string
	Tab    search.Tab
	Tabs   []search.Tab
	Result search.Result
	// NoQuery is set when the query was empty.
	NoQuery bool
}

type SignInData struct {
	Next          string
	GoogleEnabled bool
}

type UploadRecipeData struct {
	Authors []recipe.Author
	Form    url.Values
	Errors  url.Values
}

type UploadAuthorData struct {
	Form   url.Values
	Errors url.Values
}
