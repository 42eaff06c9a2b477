//go:build integration

package recipe_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/internal/testpg"
	"github.com/dmitrymomot/recipebox/svc/recipe"
)

func TestPGStore(t *testing.T) {
	pool := testpg.New(t)
	store := recipe.NewPGStore(pool)
	svc := recipe.NewService(store)
	ctx := context.Background()

	author, err := svc.CreateAuthor(ctx, recipe.CreateAuthorInput{Name: "Baek", ImageURL: "https://img/b.png"})
	require.NoError(t, err)

	for i := range 5 {
		in := validRecipeInput(author.ID)
		in.Title = fmt.Sprintf("Recipe %d", i)
		in.Ingredients = []recipe.Ingredient{{Name: "rice", Amount: "2", Unit: "cup"}, {Name: "salt", Amount: "a pinch"}}
		svc := recipe.NewService(store, recipe.WithClock(func() time.Time { return base.Add(time.Duration(i) * time.Minute) }))
		_, err := svc.CreateRecipe(ctx, "", in)
		require.NoError(t, err)
	}

	h, err := svc.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, h.TotalRecipes)
	require.Len(t, h.Recipes, 5)
	assert.Equal(t, "Recipe 4", h.Recipes[0].Title)
	assert.Equal(t, "Baek", h.Recipes[0].AuthorName)
	require.Len(t, h.Authors, 1)
	assert.Equal(t, 5, h.Authors[0].RecipeCount)

	r, err := svc.Recipe(ctx, h.Recipes[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"korean", "stew", "spicy"}, r.Tags)
	assert.Equal(t, recipe.Amount("2"), r.Ingredients[0].Amount)
	assert.Equal(t, recipe.Amount("a pinch"), r.Ingredients[1].Amount)
	assert.Equal(t, "https://img/b.png", r.Author.ImageURL)

	require.NoError(t, store.IncrementViews(ctx, r.ID))
	r, err = svc.Recipe(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, r.ViewCount)

	p, err := svc.AuthorRecipes(ctx, author.ID, "", 2)
	require.NoError(t, err)
	require.Len(t, p.Recipes, 2)
	require.NotNil(t, p.NextCursor)
	assert.True(t, p.HasMore)

	p2, err := svc.AuthorRecipes(ctx, author.ID, *p.NextCursor, 10)
	require.NoError(t, err)
	assert.Len(t, p2.Recipes, 3)
	assert.False(t, p2.HasMore)
	assert.Equal(t, "Recipe 2", p2.Recipes[0].Title)

	_, err = svc.Recipe(ctx, "missing")
	assert.ErrorIs(t, err, recipe.ErrNotFound)
	_, err = svc.Author(ctx, "missing")
	assert.ErrorIs(t, err, recipe.ErrAuthorNotFound)
	assert.ErrorIs(t, store.CreateRecipe(ctx, recipe.Recipe{
		ID: "x", Title: "x", AuthorID: "missing",
		Ingredients: []recipe.Ingredient{}, Steps: []string{}, Tags: []string{},
		CreatedAt: base, UpdatedAt: base,
	}), recipe.ErrAuthorNotFound)
}
