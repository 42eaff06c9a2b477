package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/recipebox/pkg/cookie"
)

// Transport moves the session token between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter)
}

// CookieTransport stores the token in an encrypted cookie.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	opts    []cookie.Option
}

func NewCookieTransport(cookies *cookie.Manager, name string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{cookies: cookies, name: name, opts: opts}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookies.GetEncrypted(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := append([]cookie.Option{
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithHTTPOnly(true),
	}, t.opts...)
	return t.cookies.SetEncrypted(w, t.name, token, opts...)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) {
	t.cookies.Delete(w, t.name)
}
