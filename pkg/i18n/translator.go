package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/dmitrymomot/recipebox/pkg/logger"
)

// Translator looks up messages in a Catalog. Missing keys fall back to the
// default locale, then to the key itself.
type Translator struct {
	catalog  Catalog
	fallback Locale
	logger   *slog.Logger
}

// TranslatorOption configures NewTranslator.
type TranslatorOption func(*Translator)

// WithTranslatorLogger logs missing keys at debug level.
func WithTranslatorLogger(l *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTranslator checks that every catalog locale belongs to cfg.
func NewTranslator(catalog Catalog, cfg Config, opts ...TranslatorOption) (*Translator, error) {
	if len(catalog) == 0 {
		return nil, ErrNoCatalogs
	}
	for l := range catalog {
		if !cfg.IsSupported(l) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocale, l)
		}
	}
	t := &Translator{
		catalog:  catalog,
		fallback: cfg.Default,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// T translates key. args are name/value pairs substituted into %{name}.
func (t *Translator) T(l Locale, key string, args ...string) string {
	msg, ok := t.find(l, key)
	if !ok {
		t.logger.Debug("missing translation", slog.String("locale", string(l)), slog.String("key", key))
		msg = key
	}
	return substitute(msg, args)
}

// N translates a plural key using its zero, one and other forms. The
// count is available as %{count}.
func (t *Translator) N(l Locale, key string, n int, args ...string) string {
	args = append(args[:len(args):len(args)], "count", strconv.Itoa(n))
	forms := []string{key + ".other"}
	switch n {
	case 0:
		forms = []string{key + ".zero", key + ".other"}
	case 1:
		forms = []string{key + ".one", key + ".other"}
	}
	for _, f := range forms {
		if msg, ok := t.find(l, f); ok {
			return substitute(msg, args)
		}
	}
	return t.T(l, key, args...)
}

// Tc translates using the locale stored in ctx by the Router.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}

// Has reports whether key exists for l without fallback.
func (t *Translator) Has(l Locale, key string) bool {
	_, ok := lookup(t.catalog[l], key)
	return ok
}

func (t *Translator) find(l Locale, key string) (string, bool) {
	if msg, ok := lookup(t.catalog[l], key); ok {
		return msg, true
	}
	if l != t.fallback {
		return lookup(t.catalog[t.fallback], key)
	}
	return "", false
}

func substitute(msg string, args []string) string {
	if len(args) < 2 {
		return msg
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
