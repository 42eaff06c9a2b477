package views

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/recipebox/pkg/i18n"
)

type pathContextKey struct{}

type currentPath struct {
	path  string
	query string
}

// Middleware records the request path without its locale prefix so pages can
// link to the same page in another locale. Mount it after i18n.Router.
func Middleware(cfg i18n.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, rest, _ := i18n.SplitLocale(r.URL.Path, cfg)
			ctx := context.WithValue(r.Context(), pathContextKey{}, currentPath{path: rest, query: r.URL.RawQuery})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func pathFromContext(ctx context.Context) currentPath {
	if p, ok := ctx.Value(pathContextKey{}).(currentPath); ok {
		return p
	}
	return currentPath{path: "/"}
}
