package cookie

import (
	"net/http"
	"strings"
)

// Config holds cookie manager configuration.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS,required"`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // 2 = Lax
}

func (c Config) secrets() []string {
	var out []string
	for s := range strings.SplitSeq(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewFromConfig builds a Manager from cfg. opts are applied after the
// config values.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := []Option{
		WithPath(cfg.Path),
		WithDomain(cfg.Domain),
		WithMaxAge(cfg.MaxAge),
		WithSecure(cfg.Secure),
		WithHTTPOnly(cfg.HttpOnly),
	}
	if cfg.SameSite != 0 {
		base = append(base, WithSameSite(cfg.SameSite))
	}
	return New(cfg.secrets(), append(base, opts...)...)
}
