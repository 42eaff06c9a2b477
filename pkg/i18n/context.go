package i18n

import (
	"context"
)

// localeContextKey is the key for storing locale in context
type localeContextKey struct{}

// SetLocale sets the locale in the context.
func SetLocale(ctx context.Context, locale Locale) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale from the context.
// If no locale is set, it returns Korean, the application default.
func GetLocale(ctx context.Context) Locale {
	locale, _ := ctx.Value(localeContextKey{}).(Locale)
	if locale == "" {
		return Korean
	}
	return locale
}

// LocaleFromContext returns the locale and whether the router set one.
func LocaleFromContext(ctx context.Context) (Locale, bool) {
	locale, ok := ctx.Value(localeContextKey{}).(Locale)
	return locale, ok && locale != ""
}
