package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/recipebox/handler"
	"github.com/dmitrymomot/recipebox/pkg/auth"
	"github.com/dmitrymomot/recipebox/pkg/binder"
	"github.com/dmitrymomot/recipebox/pkg/cookie"
	"github.com/dmitrymomot/recipebox/pkg/logger"
	"github.com/dmitrymomot/recipebox/pkg/session"
	"github.com/dmitrymomot/recipebox/svc/user"
)

const stateCookie = "oauth_state"

// GoogleProvider is the part of auth.Google the handlers use.
type GoogleProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (auth.Profile, error)
}

// UserSignIn creates or refreshes the account behind a Google profile.
type UserSignIn interface {
	SignInWithGoogle(ctx context.Context, p auth.Profile) (user.User, error)
}

type GoogleService struct {
	cfg          auth.GoogleConfig
	provider     GoogleProvider
	users        UserSignIn
	sessions     *session.Manager
	cookies      *cookie.Manager
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

func NewGoogleService(
	cfg auth.GoogleConfig,
	provider GoogleProvider,
	users UserSignIn,
	sessions *session.Manager,
	cookies *cookie.Manager,
	errorHandler handler.ErrorHandler[handler.Context],
	log *slog.Logger,
) *GoogleService {
	if log == nil {
		log = logger.Discard()
	}
	return &GoogleService{
		cfg:          cfg,
		provider:     provider,
		users:        users,
		sessions:     sessions,
		cookies:      cookies,
		errorHandler: errorHandler,
		log:          log,
	}
}

func (s *GoogleService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(s.start,
		handler.WithBinders[handler.Context, StartRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, StartRequest](s.errorHandler),
	))
	r.Get("/callback", handler.Wrap(s.callback,
		handler.WithBinders[handler.Context, CallbackRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, CallbackRequest](s.errorHandler),
	))

	return r
}

// SignOut destroys the session and sends the client home.
func (s *GoogleService) SignOut() http.Handler {
	return handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		if err := s.sessions.Destroy(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
			s.log.WarnContext(ctx, "destroy session", logger.Error(err))
		}
		return handler.Redirect("/")
	}, handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler))
}

type StartRequest struct {
	Next string `query:"next"`
}

// start stores the state and the post-login target in a signed cookie and
// sends the browser to Google.
func (s *GoogleService) start(ctx handler.Context, req StartRequest) handler.Response {
	state, err := auth.NewState()
	if err != nil {
		return handler.Error(err)
	}
	next := handler.SafeRedirectTarget(req.Next, "/")
	s.cookies.SetSigned(ctx.ResponseWriter(), stateCookie, state+"|"+next,
		cookie.WithMaxAge(int(s.cfg.StateTTL.Seconds())))
	return handler.RedirectWithCode(s.provider.AuthURL(state), http.StatusFound)
}

type CallbackRequest struct {
	State string `query:"state"`
	Code  string `query:"code"`
	Error string `query:"error"`
}

func (s *GoogleService) callback(ctx handler.Context, req CallbackRequest) handler.Response {
	w, r := ctx.ResponseWriter(), ctx.Request()

	stored, err := s.cookies.GetSigned(r, stateCookie)
	s.cookies.Delete(w, stateCookie)
	if err != nil {
		return handler.Error(errors.Join(handler.ErrBadRequest, auth.ErrInvalidState, err))
	}
	state, next, _ := strings.Cut(stored, "|")

	if req.Error != "" {
		s.log.InfoContext(ctx, "google sign in cancelled", slog.String("reason", req.Error))
		return handler.Redirect("/signin")
	}
	if err := auth.VerifyState(state, req.State); err != nil {
		return handler.Error(errors.Join(handler.ErrBadRequest, err))
	}

	profile, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnverifiedEmail), errors.Is(err, auth.ErrNoPrimaryEmail):
			return handler.Error(errors.Join(handler.ErrForbidden, err))
		case errors.Is(err, auth.ErrInvalidCode):
			return handler.Error(errors.Join(handler.ErrBadRequest, err))
		default:
			return handler.Error(errors.Join(handler.ErrServiceUnavailable, err))
		}
	}

	u, err := s.users.SignInWithGoogle(ctx, profile)
	if err != nil {
		return handler.Error(err)
	}
	if _, err := s.sessions.Authenticate(ctx, w, r, u.ID); err != nil {
		return handler.Error(err)
	}
	return handler.RedirectWithCode(handler.SafeRedirectTarget(next, "/"), http.StatusFound)
}
