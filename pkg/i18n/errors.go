package i18n

import "errors"

// Configuration errors.
var (
	ErrNoLocales       = errors.New("i18n: no locales configured")
	ErrInvalidLocale   = errors.New("i18n: invalid locale")
	ErrDuplicateLocale = errors.New("i18n: duplicate locale")
	ErrUnknownDefault  = errors.New("i18n: default locale is not in the locale list")
)

// Catalog errors.
var (
	ErrNoCatalogs        = errors.New("i18n: no translation catalogs found")
	ErrInvalidCatalog    = errors.New("i18n: invalid translation catalog")
	ErrUnsupportedLocale = errors.New("i18n: catalog for unsupported locale")
)
