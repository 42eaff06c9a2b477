package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleConfig holds Google OAuth client settings.
type GoogleConfig struct {
	ClientID     string        `env:"GOOGLE_OAUTH_CLIENT_ID"`
	ClientSecret string        `env:"GOOGLE_OAUTH_CLIENT_SECRET"`
	RedirectURL  string        `env:"GOOGLE_OAUTH_REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback"`
	Scopes       []string      `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"openid,email,profile"`
	StateTTL     time.Duration `env:"GOOGLE_OAUTH_STATE_TTL" envDefault:"10m"`
	VerifiedOnly bool          `env:"GOOGLE_OAUTH_VERIFIED_ONLY" envDefault:"true"`
}

// Enabled reports whether client credentials are configured.
func (c GoogleConfig) Enabled() bool { return c.ClientID != "" && c.ClientSecret != "" }

// Profile is the identity returned by the provider.
type Profile struct {
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
}

// Google exchanges authorization codes for Google profiles.
type Google struct {
	conf         *oauth2.Config
	httpClient   *http.Client
	userInfoURL  string
	verifiedOnly bool
}

type GoogleOption func(*Google)

// WithEndpoint overrides the OAuth endpoints.
func WithEndpoint(e oauth2.Endpoint) GoogleOption {
	return func(g *Google) { g.conf.Endpoint = e }
}

// WithUserInfoURL overrides the profile endpoint.
func WithUserInfoURL(u string) GoogleOption {
	return func(g *Google) { g.userInfoURL = u }
}

func WithHTTPClient(c *http.Client) GoogleOption {
	return func(g *Google) { g.httpClient = c }
}

func NewGoogle(cfg GoogleConfig, opts ...GoogleOption) *Google {
	g := &Google{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		userInfoURL:  googleUserInfoURL,
		verifiedOnly: cfg.VerifiedOnly,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AuthURL builds the consent URL for state.
func (g *Google) AuthURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades code for a token and fetches the user's profile.
func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
	if code == "" {
		return Profile{}, ErrInvalidCode
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	resp, err := g.conf.Client(ctx, tok).Get(g.userInfoURL)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("%w: status %d", ErrProfileFetch, resp.StatusCode)
	}

	var u struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	if u.Email == "" {
		return Profile{}, ErrNoPrimaryEmail
	}
	if g.verifiedOnly && !u.VerifiedEmail {
		return Profile{}, ErrUnverifiedEmail
	}
	return Profile{
		ProviderUserID: u.ID,
		Email:          u.Email,
		EmailVerified:  u.VerifiedEmail,
		Name:           u.Name,
		AvatarURL:      u.Picture,
	}, nil
}
