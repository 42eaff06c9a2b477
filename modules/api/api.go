// Package api serves the JSON endpoints under /api.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/pkg/binder"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/validator"
	"github.com/dmitrymomot/recipebox/svc/recipe"
	"github.com/dmitrymomot/recipebox/svc/search"
)

// Config holds the API rate limit.
type Config struct {
	RateLimitRequests int           `env:"API_RATE_LIMIT" envDefault:"120"`
	RateLimitWindow   time.Duration `env:"API_RATE_WINDOW" envDefault:"1m"`
}

// DefaultConfig allows 120 requests per client IP per minute.
func DefaultConfig() Config {
	return Config{RateLimitRequests: 120, RateLimitWindow: time.Minute}
}

// Created is the body of successful create calls.
type Created struct {
	Code int    `json:"code"`
	ID   string `json:"id"`
}

// Module serves the JSON API.
type Module struct {
	cfg          Config
	recipes      *recipe.Service
	search       *search.Service
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

// New creates the API module. Errors are rendered as JSON envelopes.
func New(cfg Config, recipes *recipe.Service, searchSvc *search.Service, log *slog.Logger) *Module {
	if log == nil {
		log = logger.Discard()
	}
	return &Module{
		cfg:          cfg,
		recipes:      recipes,
		search:       searchSvc,
		errorHandler: handler.NewJSONErrorHandler(log),
		log:          log,
	}
}

// Handle returns the API routes, rate limited per client IP.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	if m.cfg.RateLimitRequests > 0 {
		r.Use(httprate.Limit(m.cfg.RateLimitRequests, m.cfg.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				_ = handler.JSONError(handler.ErrTooManyRequests).Render(w, r)
			}),
		))
	}

	m.recipeRoutes(r)
	m.authorRoutes(r)
	r.Get("/search", handler.Wrap(m.searchRecipes,
		handler.WithBinders[handler.Context, SearchRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, SearchRequest](m.errorHandler),
	))

	r.NotFound(handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}, handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler)))
	r.MethodNotAllowed(handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(handler.ErrMethodNotAllowed)
	}, handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler)))
	return r
}

// deny renders a guard rejection as a JSON error.
func (m *Module) deny(err error) http.Handler {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.Error(err)
	}, handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler))
}

// apiError maps service errors onto the JSON envelope.
func apiError(err error) handler.Response {
	if ve, ok := validator.Extract(err); ok {
		return handler.Error(handler.ValidationError(ve.Values()))
	}
	switch {
	case errors.Is(err, recipe.ErrNotFound):
		return handler.Error(errors.Join(handler.ErrNotFound.WithMessage("Recipe not found"), err))
	case errors.Is(err, recipe.ErrAuthorNotFound):
		return handler.Error(errors.Join(handler.ErrNotFound.WithMessage("Author not found"), err))
	case errors.Is(err, recipe.ErrMissingID):
		return handler.Error(errors.Join(handler.ErrBadRequest.WithMessage("ID is required"), err))
	case errors.Is(err, search.ErrEmptyQuery):
		return handler.Error(errors.Join(handler.ErrBadRequest.WithMessage("Search query is required"), err))
	}
	return handler.Error(err)
}
