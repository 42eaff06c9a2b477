package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(
		validator.Required("title", "Kimchi jjigae"),
		validator.MaxLen("title", "김치찌개", 4),
		validator.ValidURL("youtube_url", ""),
		validator.ValidURL("youtube_url", "https://youtu.be/abc"),
		validator.ValidEmail("email", "cook@example.com"),
		validator.ValidUUID("author_id", "0190f3a4-8a5b-7c1d-9e2f-3a4b5c6d7e8f"),
		validator.MinNum("servings", 1, 1),
		validator.MaxNum("servings", 10.0, 10.0),
		validator.RequiredSlice("steps", []string{"boil"}),
		validator.OneOf("tab", "author", "title", "ingredient", "author"),
	))

	err := validator.Apply(
		validator.Required("title", "   "),
		validator.MaxLen("title", "long", 2),
		validator.ValidURL("image_url", "ftp://x"),
		validator.RequiredSlice[string]("steps", nil),
	)
	require.Error(t, err)

	ve, ok := validator.Extract(err)
	require.True(t, ok)
	assert.Len(t, ve, 4)
	assert.True(t, ve.Has("title"))
	assert.False(t, ve.Has("author_id"))
	assert.Len(t, ve.Values()["title"], 2)
	assert.Equal(t, "validation.required", ve[0].TranslationKey)
	assert.Equal(t, "title", ve[0].TranslationValues["field"])
}

func TestExtractNonValidation(t *testing.T) {
	t.Parallel()
	_, ok := validator.Extract(errors.New("other"))
	assert.False(t, ok)
}

func TestValidLink(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"":                              true,
		"/static/uploads/a.png":         true,
		"https://cdn.example.com/a.png": true,
		"//evil.test/a.png":             false,
		"ftp://x/a.png":                 false,
		"uploads/a.png":                 false,
	}
	for in, ok := range tests {
		err := validator.Apply(validator.ValidLink("imageUrl", in))
		assert.Equal(t, ok, err == nil, in)
	}
}
