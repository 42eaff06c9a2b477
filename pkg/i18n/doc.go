// Package i18n routes requests by locale and translates UI strings.
//
// # Locale routing
//
// Router is middleware that runs before page routing. The default locale
// (Korean, "kr") is served without a visible prefix and every other locale
// lives under its segment ("/en/..."). For each non-excluded path Route
// decides one of:
//
//	/kr, /kr/...     Redirect (307) to the unprefixed path
//	/en, /en/...     PassThrough
//	/x, Korean       Rewrite r.URL.Path to /kr/x, visible URL unchanged
//	/x, English      Redirect (307) to /en/x
//
// The preferred locale comes from ResolveLocale, a first-match scan of
// Accept-Language without quality sorting. Route and ResolveLocale are pure
// functions of their inputs, so the router holds no state.
//
//	cfg := i18n.DefaultConfig()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	r.Use(i18n.Router(cfg, i18n.WithRouterLogger(log)))
//	r.Route("/{lang}", web.Routes)
//
// Handlers read the served locale with GetLocale and build links with
// LocalizedPath.
//
// # Translations
//
// Catalogs are YAML documents keyed by locale and loaded with LoadFS,
// typically from an embed.FS. Translator.T substitutes %{name} placeholders
// and N selects zero/one/other plural forms.
package i18n
