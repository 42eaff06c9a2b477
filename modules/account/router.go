package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the account module.
// Each service is optional and will only be mounted if provided.
type RouterOptions struct {
	GoogleOAuth Mountable
	SignOut     http.Handler
}

// Router mounts the account routes under /auth.
//
// Example:
//
//	google := account.NewGoogleService(googleCfg, provider, users, sessions, cookies, errorHandler, log)
//
//	r := chi.NewRouter()
//	r.Handle("/auth/*", account.Router(account.RouterOptions{
//	    GoogleOAuth: google,
//	    SignOut:     google.SignOut(),
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(auth chi.Router) {
		if opts.GoogleOAuth != nil {
			auth.Mount("/google", opts.GoogleOAuth.Handle())
		}
		if opts.SignOut != nil {
			auth.Method(http.MethodPost, "/signout", opts.SignOut)
		}
	})

	return r
}
