package web_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/modules/web"
	"github.com/dmitrymomot/recipebox/pkg/file"
	"github.com/dmitrymomot/recipebox/pkg/i18n"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
	"github.com/dmitrymomot/recipebox/views"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type env struct {
	router  http.Handler
	store   *recipe.MemoryStore
	recipes *recipe.Service
	author  recipe.Author
	recipe  recipe.Recipe
	uploads string
}

// asRole lets tests pick the signed-in user through a header.
func asRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("X-Test-Role") {
		case "admin":
			r = r.WithContext(user.WithContext(r.Context(), user.User{ID: "u-admin", Role: user.RoleAdmin}))
		case "user":
			r = r.WithContext(user.WithContext(r.Context(), user.User{ID: "u-1", Role: user.RoleUser}))
		}
		next.ServeHTTP(w, r)
	})
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()

	store := recipe.NewMemoryStore()
	recipes := recipe.NewService(store)
	a, err := recipes.CreateAuthor(ctx, recipe.CreateAuthorInput{Name: "Baek Jong-won"})
	require.NoError(t, err)
	r, err := recipes.CreateRecipe(ctx, "u-admin", recipe.CreateRecipeInput{
		Title:       "Kimchi Stew",
		AuthorID:    a.ID,
		Serving:     1,
		Tags:        "stew, spicy",
		Ingredients: []recipe.Ingredient{{Name: "kimchi", Amount: "2", Unit: "cup"}, {Name: "salt", Amount: "a pinch"}},
		Steps:       []recipe.Step{{Description: "Boil"}},
	})
	require.NoError(t, err)

	cfg := i18n.DefaultConfig()
	catalog, err := views.Catalog()
	require.NoError(t, err)
	tr, err := i18n.NewTranslator(catalog, cfg)
	require.NoError(t, err)
	renderer, err := views.New(tr, cfg)
	require.NoError(t, err)

	uploads := t.TempDir()
	files, err := file.NewLocalStorage(uploads, "/static/uploads")
	require.NoError(t, err)

	errorHandler := handler.NewErrorHandler(logger.Discard(), handler.ErrorHandlerConfig{
		ErrorPage:  renderer.ErrorPage,
		ErrorToast: renderer.ErrorToast,
	})
	m := web.New(web.Config{MaxUploadSize: 1 << 20, GoogleEnabled: true},
		recipes, search.NewService(search.NewMemoryBackend(store)), files, renderer, errorHandler, logger.Discard())

	router := chi.NewRouter()
	router.Use(asRole, i18n.Router(cfg), views.Middleware(cfg))
	for _, l := range cfg.Locales {
		router.Mount("/"+l.String(), m.Handle())
	}
	return env{router: router, store: store, recipes: recipes, author: a, recipe: r, uploads: uploads}
}

func (e env) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e env) get(target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return e.do(req)
}

func TestHomeInBothLocales(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	kr := e.get("/")
	require.Equal(t, http.StatusOK, kr.Code)
	assert.Contains(t, kr.Body.String(), `<html lang="ko">`)
	assert.Contains(t, kr.Body.String(), "Kimchi Stew")
	assert.Contains(t, kr.Body.String(), `href="/recipe/`+e.recipe.ID+`"`)

	en := e.get("/en/")
	require.Equal(t, http.StatusOK, en.Code)
	assert.Contains(t, en.Body.String(), `<html lang="en">`)
	assert.Contains(t, en.Body.String(), `href="/en/recipe/`+e.recipe.ID+`"`)
}

func TestRecipePage(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rec := e.get("/recipe/" + e.recipe.ID + "?servings=2")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Kimchi Stew")
	assert.Contains(t, body, "4cup")
	assert.Contains(t, body, "a pinch")

	got, err := e.store.GetRecipe(context.Background(), e.recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
}

func TestRecipeServingsPatchDoesNotCountView(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rec := e.get("/recipe/"+e.recipe.ID+"?servings=3", "Accept", "text/event-stream")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, rec.Body.String(), "#ingredients")
	assert.Contains(t, rec.Body.String(), "6cup")
	assert.NotContains(t, rec.Body.String(), "<html")

	got, err := e.store.GetRecipe(context.Background(), e.recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ViewCount)
}

func TestNotFoundPages(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	tests := []struct {
		name   string
		target string
	}{
		{"unknown recipe", "/recipe/missing"},
		{"unknown author", "/en/author/missing"},
		{"unknown route", "/nothing-here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := e.get(tt.target)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "<h1>404</h1>")
		})
	}
}

func TestAuthorPages(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	list := e.get("/author")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Baek Jong-won")

	page := e.get("/author/" + e.author.ID)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Kimchi Stew")
	assert.Contains(t, page.Body.String(), `<div id="load-more"></div>`)

	more := e.get("/author/"+e.author.ID+"?cursor="+e.recipe.ID, "Accept", "text/event-stream")
	require.Equal(t, http.StatusOK, more.Code)
	assert.Contains(t, more.Body.String(), "#load-more")
	assert.Contains(t, more.Body.String(), "replace")
	assert.NotContains(t, more.Body.String(), "Kimchi Stew")
}

func TestSearchPage(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	empty := e.get("/en/search")
	require.Equal(t, http.StatusOK, empty.Code)
	assert.Contains(t, empty.Body.String(), `id="search-results"`)

	found := e.get("/en/search?q=kimchi")
	require.Equal(t, http.StatusOK, found.Code)
	assert.Contains(t, found.Body.String(), "Kimchi Stew")

	patch := e.get("/search?q=baek&tab=author", "Accept", "text/event-stream")
	require.Equal(t, http.StatusOK, patch.Code)
	assert.Contains(t, patch.Body.String(), "#search-results")
	assert.Contains(t, patch.Body.String(), "Baek Jong-won")
}

func TestSignInPages(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	for _, p := range []string{"/signin", "/signup"} {
		rec := e.get(p)
		assert.Equal(t, http.StatusOK, rec.Code, p)
		assert.Contains(t, rec.Body.String(), "/auth/google", p)

		signed := e.get("/en"+p, "X-Test-Role", "user")
		assert.Equal(t, http.StatusSeeOther, signed.Code, p)
		assert.Equal(t, "/en", signed.Header().Get("Location"), p)
	}
}

func TestUploadRequiresAdmin(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	tests := []struct {
		role string
		code int
	}{
		{"", http.StatusUnauthorized},
		{"user", http.StatusForbidden},
		{"admin", http.StatusOK},
	}
	for _, tt := range tests {
		for _, p := range []string{"/upload", "/upload/author"} {
			rec := e.get(p, "X-Test-Role", tt.role)
			assert.Equal(t, tt.code, rec.Code, "%s as %q", p, tt.role)
		}
	}
}

func TestUploadGuardRunsBeforeBinding(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	for _, role := range []string{"", "user"} {
		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("--broken"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=nope")
		req.Header.Set("X-Test-Role", role)
		rec := e.do(req)
		want := http.StatusUnauthorized
		if role == "user" {
			want = http.StatusForbidden
		}
		assert.Equal(t, want, rec.Code, "role %q", role)
	}
	entries, err := os.ReadDir(e.uploads)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing stored")
}

func multipartRequest(t *testing.T, target string, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Test-Role", "admin")
	return req
}

func TestUploadRecipe(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	req := multipartRequest(t, "/en/upload", map[string]string{
		"title":         "Bulgogi",
		"recipe_author": e.author.ID,
		"serving":       "2",
		"tags":          "beef, grill",
		"ingredients":   "beef | 300 | g\nsoy sauce | 3 | tbsp\n",
		"steps":         "Marinate\n\nGrill\n",
	}, "thumbnail", "bulgogi.png", pngHeader)
	rec := e.do(req)

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/en/recipe/"), loc)

	got, err := e.recipes.Recipe(context.Background(), strings.TrimPrefix(loc, "/en/recipe/"))
	require.NoError(t, err)
	assert.Equal(t, "Bulgogi", got.Title)
	assert.Equal(t, 2, got.Serving)
	assert.Equal(t, []string{"beef", "grill"}, got.Tags)
	assert.Equal(t, []string{"Marinate", "Grill"}, got.Steps)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, recipe.Ingredient{Name: "soy sauce", Amount: "3", Unit: "tbsp"}, got.Ingredients[1])
	require.True(t, strings.HasPrefix(got.ThumbnailURL, "/static/uploads/recipes/"), got.ThumbnailURL)

	_, err = os.Stat(filepath.Join(e.uploads, filepath.FromSlash(strings.TrimPrefix(got.ThumbnailURL, "/static/uploads/"))))
	assert.NoError(t, err)
}

func TestUploadRecipeValidation(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	tests := []struct {
		name      string
		fields    map[string]string
		fileName  string
		content   []byte
		wantError string
	}{
		{
			name:      "missing fields",
			fields:    map[string]string{"title": "Keep me", "serving": "1"},
			wantError: `name="title" value="Keep me"`,
		},
		{
			name: "not an image",
			fields: map[string]string{
				"title": "Soup", "recipe_author": e.author.ID, "serving": "1",
				"ingredients": "water", "steps": "Boil",
			},
			fileName:  "notes.txt",
			content:   []byte("plain text, not an image"),
			wantError: "must be a JPEG",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			field := ""
			if tt.fileName != "" {
				field = "thumbnail"
			}
			rec := e.do(multipartRequest(t, "/upload", tt.fields, field, tt.fileName, tt.content))
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantError)
		})
	}

	n, err := e.store.CountRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUploadAuthor(t *testing.T) {
	t.Parallel()
	e := newEnv(t)

	rec := e.do(multipartRequest(t, "/upload/author", map[string]string{
		"name":        "Jamie",
		"youtube_url": "https://youtube.com/@jamie",
	}, "", "", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/author/"), loc)

	a, err := e.recipes.Author(context.Background(), strings.TrimPrefix(loc, "/author/"))
	require.NoError(t, err)
	assert.Equal(t, "Jamie", a.Name)
	assert.Empty(t, a.ImageURL)

	bad := e.do(multipartRequest(t, "/upload/author", map[string]string{"youtube_url": "nope"}, "", "", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, bad.Code)
	assert.Contains(t, bad.Body.String(), `value="nope"`)

	form := url.Values{"name": {"Plain Form"}}
	req := httptest.NewRequest(http.MethodPost, "/upload/author", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Test-Role", "admin")
	assert.Equal(t, http.StatusSeeOther, e.do(req).Code)
}
