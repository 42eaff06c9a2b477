package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/modules/api"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

type env struct {
	router  http.Handler
	store   *recipe.MemoryStore
	recipes *recipe.Service
	author  recipe.Author
	recipe  recipe.Recipe
}

func newEnv(t *testing.T, cfg api.Config) env {
	t.Helper()
	ctx := context.Background()

	store := recipe.NewMemoryStore()
	recipes := recipe.NewService(store)
	a, err := recipes.CreateAuthor(ctx, recipe.CreateAuthorInput{Name: "Baek Jong-won"})
	require.NoError(t, err)
	r, err := recipes.CreateRecipe(ctx, "u-admin", recipe.CreateRecipeInput{
		Title:       "Kimchi Stew",
		AuthorID:    a.ID,
		Serving:     2,
		Tags:        "stew",
		Ingredients: []recipe.Ingredient{{Name: "kimchi", Amount: "1.5", Unit: "cup"}},
		Steps:       []recipe.Step{{Description: "Boil"}},
	})
	require.NoError(t, err)

	m := api.New(cfg, recipes, search.NewService(search.NewMemoryBackend(store)), logger.Discard())
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Header.Get("X-Test-Role") {
			case "admin":
				r = r.WithContext(user.WithContext(r.Context(), user.User{ID: "u-admin", Role: user.RoleAdmin}))
			case "user":
				r = r.WithContext(user.WithContext(r.Context(), user.User{ID: "u-1", Role: user.RoleUser}))
			}
			next.ServeHTTP(w, r)
		})
	})
	router.Mount("/api", m.Handle())
	return env{router: router, store: store, recipes: recipes, author: a, recipe: r}
}

func (e env) call(t *testing.T, method, target, role, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Test-Role", role)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestMain(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})

	code, body := e.call(t, http.MethodGet, "/api/main", "", "")
	require.Equal(t, http.StatusOK, code)

	var home recipe.Home
	require.NoError(t, json.Unmarshal(body.Data, &home))
	assert.Equal(t, 1, home.TotalRecipes)
	require.Len(t, home.Recipes, 1)
	assert.Equal(t, "Kimchi Stew", home.Recipes[0].Title)
	assert.Equal(t, "Baek Jong-won", home.Recipes[0].AuthorName)
}

func TestGetRecipe(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})

	code, body := e.call(t, http.MethodGet, "/api/recipe?recipeId="+e.recipe.ID, "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body.Data), `"amount":1.5`)

	var got recipe.Recipe
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Equal(t, e.recipe.ID, got.ID)
	assert.Equal(t, "Baek Jong-won", got.Author.Name)

	stored, err := e.store.GetRecipe(context.Background(), e.recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ViewCount)

	tests := []struct {
		name   string
		target string
		code   int
		errKey string
	}{
		{"missing id", "/api/recipe", http.StatusBadRequest, "bad_request"},
		{"unknown id", "/api/recipe?recipeId=nope", http.StatusNotFound, "not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, body := e.call(t, http.MethodGet, tt.target, "", "")
			assert.Equal(t, tt.code, code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.errKey, body.Error.Code)
		})
	}
}

func TestCreateRecipe(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})

	payload := `{
		"title": "Bulgogi",
		"recipeAuthor": "` + e.author.ID + `",
		"videoUrl": "https://youtu.be/abc",
		"imageUrl": "",
		"serving": 2,
		"tags": "beef, , grill",
		"ingredients": [{"name": "beef", "amount": 300, "unit": "g"}],
		"steps": [{"description": "Marinate"}, {"description": "Grill"}],
		"tip": ""
	}`

	tests := []struct {
		role string
		code int
	}{
		{"", http.StatusUnauthorized},
		{"user", http.StatusForbidden},
		{"admin", http.StatusCreated},
	}
	for _, tt := range tests {
		code, body := e.call(t, http.MethodPost, "/api/recipe", tt.role, payload)
		require.Equal(t, tt.code, code, "role %q", tt.role)
		if tt.code != http.StatusCreated {
			continue
		}
		var created api.Created
		require.NoError(t, json.Unmarshal(body.Data, &created))
		assert.Equal(t, 1, created.Code)

		r, err := e.recipes.Recipe(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"beef", "grill"}, r.Tags)
		assert.Equal(t, []string{"Marinate", "Grill"}, r.Steps)
		assert.Equal(t, recipe.Amount("300"), r.Ingredients[0].Amount)
		assert.Equal(t, "u-admin", r.UserID)
	}
}

func TestCreateGuardRunsBeforeBinding(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})

	for _, target := range []string{"/api/recipe", "/api/author"} {
		code, _ := e.call(t, http.MethodPost, target, "", `{not json`)
		assert.Equal(t, http.StatusUnauthorized, code, target)
		code, _ = e.call(t, http.MethodPost, target, "user", `{not json`)
		assert.Equal(t, http.StatusForbidden, code, target)
		code, _ = e.call(t, http.MethodPost, target, "admin", `{not json`)
		assert.Equal(t, http.StatusBadRequest, code, target)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})

	code, body := e.call(t, http.MethodPost, "/api/recipe", "admin", `{"title": "", "serving": 0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Contains(t, body.Error.Details, "title")
	assert.Contains(t, body.Error.Details, "serving")

	code, body = e.call(t, http.MethodPost, "/api/recipe", "admin", `{"unknown": true}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "bad_request", body.Error.Code)
}

func TestAuthors(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})

	code, _ := e.call(t, http.MethodGet, "/api/author", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := e.call(t, http.MethodGet, "/api/author", "user", "")
	require.Equal(t, http.StatusOK, code)
	var list []recipe.Author
	require.NoError(t, json.Unmarshal(body.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Baek Jong-won", list[0].Name)

	code, _ = e.call(t, http.MethodPost, "/api/author", "user", `{"name": "Jamie"}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, body = e.call(t, http.MethodPost, "/api/author", "admin", `{"name": "Jamie", "youtubeUrl": "https://youtube.com/@jamie"}`)
	require.Equal(t, http.StatusCreated, code)
	var created api.Created
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, 1, created.Code)

	code, body = e.call(t, http.MethodGet, "/api/author/"+created.ID, "", "")
	require.Equal(t, http.StatusOK, code)
	var a recipe.Author
	require.NoError(t, json.Unmarshal(body.Data, &a))
	assert.Equal(t, "Jamie", a.Name)

	code, body = e.call(t, http.MethodGet, "/api/author/missing", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Author not found", body.Error.Message)
}

func TestAuthorRecipesPaging(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})
	ctx := context.Background()
	for _, title := range []string{"Second", "Third"} {
		_, err := e.recipes.CreateRecipe(ctx, "u-admin", recipe.CreateRecipeInput{
			Title: title, AuthorID: e.author.ID, Serving: 1,
			Ingredients: []recipe.Ingredient{{Name: "rice"}},
			Steps:       []recipe.Step{{Description: "Cook"}},
		})
		require.NoError(t, err)
	}

	var seen []string
	target := "/api/author/" + e.author.ID + "/recipes?limit=2"
	for range 3 {
		code, body := e.call(t, http.MethodGet, target, "", "")
		require.Equal(t, http.StatusOK, code)
		var page recipe.Page
		require.NoError(t, json.Unmarshal(body.Data, &page))
		for _, r := range page.Recipes {
			seen = append(seen, r.ID)
		}
		if !page.HasMore {
			assert.Nil(t, page.NextCursor)
			break
		}
		require.NotNil(t, page.NextCursor)
		target = "/api/author/" + e.author.ID + "/recipes?limit=2&cursor=" + *page.NextCursor
	}
	assert.Len(t, seen, 3)
	assert.Contains(t, seen, e.recipe.ID)

	code, _ := e.call(t, http.MethodGet, "/api/author/missing/recipes", "", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})

	code, body := e.call(t, http.MethodGet, "/api/search?q=kimchi&tab=ingredient", "", "")
	require.Equal(t, http.StatusOK, code)
	var res search.Result
	require.NoError(t, json.Unmarshal(body.Data, &res))
	assert.Equal(t, search.TabIngredient, res.Type)
	require.Len(t, res.Ingredients, 1)
	assert.Equal(t, e.recipe.ID, res.Ingredients[0].ID)
	assert.EqualValues(t, 1, body.Meta["total"])

	code, body = e.call(t, http.MethodGet, "/api/search?q=%20%20", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, body.Error)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{RateLimitRequests: 2, RateLimitWindow: time.Minute})

	for range 2 {
		code, _ := e.call(t, http.MethodGet, "/api/main", "", "")
		require.Equal(t, http.StatusOK, code)
	}
	code, body := e.call(t, http.MethodGet, "/api/main", "", "")
	assert.Equal(t, http.StatusTooManyRequests, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "too_many_requests", body.Error.Code)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()
	e := newEnv(t, api.Config{})

	code, body := e.call(t, http.MethodGet, "/api/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, body.Error)
}
