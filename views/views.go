package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/pkg/i18n"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
)

//go:embed templates
var templatesFS embed.FS

//go:embed locales
var localesFS embed.FS

// Catalog loads the embedded translations.
func Catalog() (i18n.Catalog, error) {
	return i18n.LoadFS(localesFS, "locales")
}

// Renderer builds page and partial components.
type Renderer struct {
	cfg      i18n.Config
	tr       *i18n.Translator
	pages    map[string]*template.Template
	partials *template.Template
}

func New(tr *i18n.Translator, cfg i18n.Config) (*Renderer, error) {
	r := &Renderer{cfg: cfg, tr: tr, pages: map[string]*template.Template{}}

	base, err := template.New("").Funcs(r.funcs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templatesFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	if r.partials, err = base.Clone(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"t": func(l i18n.Locale, key string, args ...string) string {
			return r.tr.T(l, key, args...)
		},
		"n": func(l i18n.Locale, key string, n int, args ...string) string {
			return r.tr.N(l, key, n, args...)
		},
		"path": func(l i18n.Locale, p string, args ...any) string {
			if len(args) > 0 {
				p = fmt.Sprintf(p, args...)
			}
			return i18n.LocalizedPath(p, l, r.cfg)
		},
		"tabURL": func(l i18n.Locale, q string, tab search.Tab) string {
			return i18n.LocalizedPath(search.TabURL(q, tab), l, r.cfg)
		},
		"switchURL": func(l i18n.Locale, p, rawQuery string) string {
			p = i18n.LocalizedPath(p, l, r.cfg)
			if rawQuery != "" {
				p += "?" + rawQuery
			}
			return p
		},
		"withQuery": func(p, key, value string) string {
			return p + "?" + url.Values{key: {value}}.Encode()
		},
		"recipeCard": func(l i18n.Locale, s recipe.Summary) recipeCard {
			return recipeCard{Locale: l, Recipe: s}
		},
		"authorCard": func(l i18n.Locale, a recipe.Author) authorCard {
			return authorCard{Locale: l, Author: a}
		},
		"servings": recipe.FormatServings,
		"float":    func(n int) float64 { return float64(n) },
		"join":     strings.Join,
		"str":      func(v any) string { return fmt.Sprint(v) },
		"field": func(v url.Values, key string) string {
			return v.Get(key)
		},
	}
}

func (r *Renderer) view(ctx context.Context, data any) View {
	l := i18n.GetLocale(ctx)
	p := pathFromContext(ctx)
	v := View{
		Locale:  l,
		Lang:    r.cfg.Tag(l).String(),
		Locales: r.cfg.Locales,
		Path:    p.path,
		Query:   p.query,
		Data:    data,
	}
	if u, ok := user.FromContext(ctx); ok {
		v.User = &u
	}
	return v
}

func (r *Renderer) page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := r.pages[name]
		if !ok {
			return fmt.Errorf("views: unknown page %q", name)
		}
		return templ.FromGoHTML(t.Lookup("layout"), r.view(ctx, data)).Render(ctx, w)
	})
}

func (r *Renderer) partial(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := r.partials.Lookup(name)
		if t == nil {
			return fmt.Errorf("views: unknown partial %q", name)
		}
		return templ.FromGoHTML(t, r.view(ctx, data)).Render(ctx, w)
	})
}

// LocalizedPath links path in the locale of ctx.
func (r *Renderer) LocalizedPath(ctx context.Context, p string) string {
	return i18n.LocalizedPath(p, i18n.GetLocale(ctx), r.cfg)
}

func (r *Renderer) Home(d HomeData) templ.Component       { return r.page("home", d) }
func (r *Renderer) Recipe(d RecipeData) templ.Component   { return r.page("recipe", d) }
func (r *Renderer) Authors(d AuthorsData) templ.Component { return r.page("authors", d) }
func (r *Renderer) Author(d AuthorData) templ.Component   { return r.page("author", d) }
func (r *Renderer) Search(d SearchData) templ.Component   { return r.page("search", d) }
func (r *Renderer) SignIn(d SignInData) templ.Component   { return r.page("signin", d) }
func (r *Renderer) SignUp(d SignInData) templ.Component   { return r.page("signup", d) }

func (r *Renderer) UploadRecipe(d UploadRecipeData) templ.Component {
	return r.page("upload", d)
}

func (r *Renderer) UploadAuthor(d UploadAuthorData) templ.Component {
	return r.page("upload_author", d)
}

// Ingredients is the scaled ingredient list patched when servings change.
func (r *Renderer) Ingredients(d RecipeData) templ.Component { return r.partial("ingredients", d) }

// MoreRecipes replaces the load more button with the next page of an author's
// recipes followed by a new button.
func (r *Renderer) MoreRecipes(d AuthorData) templ.Component { return r.partial("more-recipes", d) }

// SearchResults is the tab bar and result list patched when the tab changes.
func (r *Renderer) SearchResults(d SearchData) templ.Component { return r.partial("search-results", d) }

func (r *Renderer) ErrorPage(p handler.ErrorPageParams) templ.Component { return r.page("error", p) }

func (r *Renderer) ErrorToast(p handler.ErrorToastParams) templ.Component {
	return r.partial("toast", p)
}
