package recipe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/recipebox/svc/recipe"
)

func TestScaleAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   string
		servings float64
		want     string
	}{
		{"2", 1, "2"},
		{"2", 1.5, "3"},
		{"1", 0.5, "0.5"},
		{"0.3", 3, "0.9"},
		{"1.25", 2, "2.5"},
		{"100", 2.5, "250"},
		{"0.33", 1, "0.3"},
		{"a pinch", 4, "a pinch"},
		{"", 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, recipe.ScaleAmount(tt.amount, tt.servings))
		})
	}
}

func TestScaleIngredientsKeepsInput(t *testing.T) {
	t.Parallel()

	in := []recipe.Ingredient{{Name: "rice", Amount: "2", Unit: "cup"}, {Name: "salt", Amount: "to taste"}}
	out := recipe.ScaleIngredients(in, 2)

	assert.Equal(t, recipe.Amount("4"), out[0].Amount)
	assert.Equal(t, recipe.Amount("to taste"), out[1].Amount)
	assert.Equal(t, recipe.Amount("2"), in[0].Amount)
}

func TestClampServings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.5, recipe.ClampServings(0))
	assert.Equal(t, 0.5, recipe.ClampServings(-3))
	assert.Equal(t, 10.0, recipe.ClampServings(12))
	assert.Equal(t, 1.5, recipe.ClampServings(1.4))
	assert.Equal(t, 2.0, recipe.ClampServings(2))
	assert.Equal(t, 1.0, recipe.ClampServings(math.NaN()))

	assert.Equal(t, 1.0, recipe.ParseServings(""))
	assert.Equal(t, 1.0, recipe.ParseServings("abc"))
	assert.Equal(t, 2.5, recipe.ParseServings("2.5"))
	assert.Equal(t, "2.5", recipe.FormatServings(2.5))
	assert.Equal(t, "3", recipe.FormatServings(3))
}
