package i18n

import (
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

// Locale is a supported locale segment as it appears in URLs ("kr", "en").
type Locale string

// Supported locales.
const (
	Korean  Locale = "kr"
	English Locale = "en"
)

// String implements fmt.Stringer.
func (l Locale) String() string { return string(l) }

// Config describes the locale set served by the router.
// It is a plain value: pass it explicitly to Route, Router and LocalizedPath.
type Config struct {
	// Locales is the closed, ordered set of supported locales.
	Locales []Locale

	// Default is the locale served without a visible URL prefix.
	Default Locale

	// Prefixes maps a locale to the Accept-Language prefix that selects it.
	// Locales without an entry are never selected from the header.
	Prefixes map[Locale]string

	// Tags maps a locale to its BCP 47 tag used for Content-Language.
	// Missing entries fall back to language.Make(locale).
	Tags map[Locale]language.Tag

	// Exclude lists paths the router must not touch.
	Exclude Matcher
}

// DefaultConfig returns the Korean-default, English-secondary configuration.
func DefaultConfig() Config {
	return Config{
		Locales: []Locale{Korean, English},
		Default: Korean,
		Prefixes: map[Locale]string{
			English: "en",
		},
		Tags: map[Locale]language.Tag{
			Korean:  language.Korean,
			English: language.English,
		},
		Exclude: DefaultExclude(),
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if len(c.Locales) == 0 {
		return ErrNoLocales
	}

	seen := make(map[Locale]struct{}, len(c.Locales))
	for _, l := range c.Locales {
		if l == "" {
			return fmt.Errorf("%w: empty locale", ErrInvalidLocale)
		}
		if _, ok := seen[l]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateLocale, l)
		}
		seen[l] = struct{}{}
	}

	if _, ok := seen[c.Default]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDefault, c.Default)
	}

	for l := range c.Prefixes {
		if _, ok := seen[l]; !ok {
			return fmt.Errorf("%w: prefix for %s", ErrInvalidLocale, l)
		}
	}

	return nil
}

// IsSupported reports whether l belongs to the configured locale set.
func (c Config) IsSupported(l Locale) bool {
	return slices.Contains(c.Locales, l)
}

// Parse converts a raw segment into a supported locale.
func (c Config) Parse(s string) (Locale, bool) {
	l := Locale(s)
	if !c.IsSupported(l) {
		return "", false
	}
	return l, true
}

// Tag returns the BCP 47 tag for l.
func (c Config) Tag(l Locale) language.Tag {
	if t, ok := c.Tags[l]; ok {
		return t
	}
	t, err := language.Parse(string(l))
	if err != nil {
		return language.Und
	}
	return t
}
