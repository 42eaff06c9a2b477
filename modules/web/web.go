// Package web serves the locale-mounted HTML pages.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/pkg/binder"
	"github.com/dmitrymomot/recipebox/pkg/file"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
	"github.com/dmitrymomot/recipebox/svc/user"
	"github.com/dmitrymomot/recipebox/views"
)

type Config struct {
	// MaxUploadSize bounds thumbnails and author pictures in bytes.
	MaxUploadSize int64
	GoogleEnabled bool
}

type Module struct {
	cfg          Config
	recipes      *recipe.Service
	search       *search.Service
	files        file.Storage
	views        *views.Renderer
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

func New(
	cfg Config,
	recipes *recipe.Service,
	searchSvc *search.Service,
	files file.Storage,
	renderer *views.Renderer,
	errorHandler handler.ErrorHandler[handler.Context],
	log *slog.Logger,
) *Module {
	if log == nil {
		log = logger.Discard()
	}
	return &Module{
		cfg:          cfg,
		recipes:      recipes,
		search:       searchSvc,
		files:        files,
		views:        renderer,
		errorHandler: errorHandler,
		log:          log,
	}
}

// Handle returns the page routes. Mount it once per locale prefix.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	path := binder.Path(chi.URLParam)

	r.Get("/", handler.Wrap(m.home,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))
	r.Get("/recipe/{id}", handler.Wrap(m.recipe,
		handler.WithBinders[handler.Context, RecipeRequest](path, binder.Query()),
		handler.WithErrorHandler[handler.Context, RecipeRequest](m.errorHandler),
	))
	r.Get("/author", handler.Wrap(m.authors,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))
	r.Get("/author/{id}", handler.Wrap(m.author,
		handler.WithBinders[handler.Context, AuthorRequest](path, binder.Query()),
		handler.WithErrorHandler[handler.Context, AuthorRequest](m.errorHandler),
	))
	r.Get("/search", handler.Wrap(m.searchPage,
		handler.WithBinders[handler.Context, SearchRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, SearchRequest](m.errorHandler),
	))
	r.Get("/signin", handler.Wrap(m.signIn,
		handler.WithBinders[handler.Context, SignInRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, SignInRequest](m.errorHandler),
	))
	r.Get("/signup", handler.Wrap(m.signUp,
		handler.WithBinders[handler.Context, SignInRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, SignInRequest](m.errorHandler),
	))

	r.Group(func(r chi.Router) {
		r.Use(user.AdminOnly(m.deny))
		r.Get("/upload", handler.Wrap(m.uploadRecipeForm,
			handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
		))
		r.Post("/upload", handler.Wrap(m.uploadRecipe,
			handler.WithBinders[handler.Context, UploadRecipeForm](binder.Form()),
			handler.WithErrorHandler[handler.Context, UploadRecipeForm](m.errorHandler),
		))
		r.Get("/upload/author", handler.Wrap(m.uploadAuthorForm,
			handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
		))
		r.Post("/upload/author", handler.Wrap(m.uploadAuthor,
			handler.WithBinders[handler.Context, UploadAuthorForm](binder.Form()),
			handler.WithErrorHandler[handler.Context, UploadAuthorForm](m.errorHandler),
		))
	})

	r.NotFound(handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}, handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler)))

	return r
}

// deny renders a guard rejection through the page error handler.
func (m *Module) deny(err error) http.Handler {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(err)
	}, handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler))
}

// httpError maps service errors onto HTTP errors.
func httpError(err error) error {
	switch {
	case errors.Is(err, recipe.ErrNotFound):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, recipe.ErrAuthorNotFound):
		return errors.Join(handler.ErrNotFound.WithMessage("Author not found"), err)
	case errors.Is(err, recipe.ErrMissingID):
		return errors.Join(handler.ErrBadRequest, err)
	default:
		return err
	}
}
