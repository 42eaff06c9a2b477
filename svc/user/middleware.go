package user

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/session"
)

// CurrentUser loads the user of an authenticated session into the request
// context. A session pointing at a deleted user is treated as anonymous.
func CurrentUser(svc *Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := session.UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			u, err := svc.Get(r.Context(), id)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					log.ErrorContext(r.Context(), "load current user", logger.UserID(id), logger.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), u)))
		})
	}
}

// LoggerExtractor adds user_id to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		u, ok := FromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.UserID(u.ID), true
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser[R any]() handler.Decorator[handler.Context, R] {
	return guard[R](checkUser)
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin[R any]() handler.Decorator[handler.Context, R] {
	return guard[R](checkAdmin)
}

// UserOnly is RequireUser as router middleware. It runs before any request
// body is read. deny renders the rejection.
func UserOnly(deny func(error) http.Handler) func(http.Handler) http.Handler {
	return guardMiddleware(deny, checkUser)
}

// AdminOnly is RequireAdmin as router middleware. Mount it ahead of routes
// that bind request bodies so anonymous uploads are never parsed.
func AdminOnly(deny func(error) http.Handler) func(http.Handler) http.Handler {
	return guardMiddleware(deny, checkAdmin)
}

func checkUser(ctx context.Context) error {
	if _, ok := FromContext(ctx); !ok {
		return handler.ErrUnauthorized
	}
	return nil
}

func checkAdmin(ctx context.Context) error {
	u, ok := FromContext(ctx)
	if !ok {
		return handler.ErrUnauthorized
	}
	if !u.IsAdmin() {
		return handler.ErrForbidden
	}
	return nil
}

func guard[R any](check func(context.Context) error) handler.Decorator[handler.Context, R] {
	return func(next handler.HandlerFunc[handler.Context, R]) handler.HandlerFunc[handler.Context, R] {
		return func(ctx handler.Context, req R) handler.Response {
			if err := check(ctx); err != nil {
				return handler.Error(err)
			}
			return next(ctx, req)
		}
	}
}

func guardMiddleware(deny func(error) http.Handler, check func(context.Context) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := check(r.Context()); err != nil {
				deny(err).ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
