package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/recipebox/pkg/auth"
)

func fakeGoogle(t *testing.T, verified bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "good" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at", "token_type": "Bearer", "expires_in": 3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "g-1", "email": "cook@example.com", "verified_email": verified,
			"name": "Cook", "picture": "https://img/p.png",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGoogle(srv *httptest.Server) *auth.Google {
	return auth.NewGoogle(auth.GoogleConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURL:  "http://app/auth/google/callback",
		Scopes:       []string{"email"},
		VerifiedOnly: true,
	},
		auth.WithEndpoint(oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token", AuthStyle: oauth2.AuthStyleInParams}),
		auth.WithUserInfoURL(srv.URL+"/userinfo"),
		auth.WithHTTPClient(srv.Client()),
	)
}

func TestGoogleAuthURL(t *testing.T) {
	t.Parallel()

	g := newGoogle(fakeGoogle(t, true))
	u, err := url.Parse(g.AuthURL("st"))
	require.NoError(t, err)
	assert.Equal(t, "/auth", u.Path)
	assert.Equal(t, "st", u.Query().Get("state"))
	assert.Equal(t, "id", u.Query().Get("client_id"))
	assert.Equal(t, "http://app/auth/google/callback", u.Query().Get("redirect_uri"))
}

func TestGoogleExchange(t *testing.T) {
	t.Parallel()

	g := newGoogle(fakeGoogle(t, true))
	p, err := g.Exchange(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, auth.Profile{
		ProviderUserID: "g-1",
		Email:          "cook@example.com",
		EmailVerified:  true,
		Name:           "Cook",
		AvatarURL:      "https://img/p.png",
	}, p)

	_, err = g.Exchange(context.Background(), "bad")
	assert.ErrorIs(t, err, auth.ErrInvalidCode)

	_, err = g.Exchange(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidCode)
}

func TestGoogleExchangeUnverified(t *testing.T) {
	t.Parallel()

	g := newGoogle(fakeGoogle(t, false))
	_, err := g.Exchange(context.Background(), "good")
	assert.ErrorIs(t, err, auth.ErrUnverifiedEmail)
}

func TestState(t *testing.T) {
	t.Parallel()

	a, err := auth.NewState()
	require.NoError(t, err)
	b, err := auth.NewState()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	assert.NoError(t, auth.VerifyState(a, a))
	assert.ErrorIs(t, auth.VerifyState(a, b), auth.ErrInvalidState)
	assert.ErrorIs(t, auth.VerifyState("", ""), auth.ErrInvalidState)
}
