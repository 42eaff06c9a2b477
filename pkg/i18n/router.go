package i18n

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/recipebox/pkg/logger"
)

// RouterOption configures the Router middleware.
type RouterOption func(*routerOptions)

type routerOptions struct {
	logger         *slog.Logger
	redirectStatus int
	onRedirect     func(Locale)
}

// WithRouterLogger logs every routing decision at debug level.
func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(o *routerOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRedirectStatus overrides the redirect status code (307 by default).
func WithRedirectStatus(code int) RouterOption {
	return func(o *routerOptions) {
		if code >= 300 && code < 400 {
			o.redirectStatus = code
		}
	}
}

// WithRedirectHook calls fn with the target locale of every redirect.
func WithRedirectHook(fn func(Locale)) RouterOption {
	return func(o *routerOptions) { o.onRedirect = fn }
}

// Router returns middleware applying Route to every non-excluded request.
//
// Routing works on the escaped path, so percent-encoded bytes such as %3F
// and %2F survive a redirect. Redirects keep the query string. Rewrites
// replace r.URL.Path so the
// downstream mux sees the locale-prefixed path while the visible URL stays
// the same. The resolved locale is stored in the request context and echoed
// in the Content-Language header.
func Router(cfg Config, opts ...RouterOption) func(http.Handler) http.Handler {
	o := &routerOptions{
		logger:         logger.Discard(),
		redirectStatus: http.StatusTemporaryRedirect,
	}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Exclude.Match(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			escaped := r.URL.EscapedPath()
			d := Route(escaped, r.Header.Get("Accept-Language"), cfg)
			o.logger.DebugContext(r.Context(), "locale routing",
				slog.String("path", escaped),
				slog.String("action", d.Action.String()),
				slog.String("target", d.Path),
				slog.String("locale", d.Locale.String()),
			)

			switch d.Action {
			case Redirect:
				target := d.Path
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				if o.onRedirect != nil {
					o.onRedirect(d.Locale)
				}
				w.Header().Add("Vary", "Accept-Language")
				http.Redirect(w, r, target, o.redirectStatus)
				return
			case Rewrite:
				r2 := r.Clone(SetLocale(r.Context(), d.Locale))
				r2.URL = withEscapedPath(*r.URL, d.Path)
				w.Header().Add("Vary", "Accept-Language")
				w.Header().Set("Content-Language", cfg.Tag(d.Locale).String())
				next.ServeHTTP(w, r2)
				return
			default:
				w.Header().Set("Content-Language", cfg.Tag(d.Locale).String())
				next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), d.Locale)))
			}
		})
	}
}

// withEscapedPath sets both forms of the path from its escaped form.
func withEscapedPath(u url.URL, escaped string) *url.URL {
	p, err := url.PathUnescape(escaped)
	if err != nil {
		p = escaped
	}
	u.Path = p
	u.RawPath = ""
	if escaped != p {
		u.RawPath = escaped
	}
	return &u
}
