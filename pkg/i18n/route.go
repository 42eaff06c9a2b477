package i18n

import "strings"

// Action is the routing outcome for a request path.
type Action int

const (
	// PassThrough serves the request as-is.
	PassThrough Action = iota
	// Redirect sends the client to Decision.Path.
	Redirect
	// Rewrite serves Decision.Path internally, keeping the visible URL.
	Rewrite
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case PassThrough:
		return "pass-through"
	case Redirect:
		return "redirect"
	case Rewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// Decision is the result of Route.
type Decision struct {
	Action Action
	// Path is the target path for Redirect and Rewrite, the input path for PassThrough.
	Path string
	// Locale is the locale the request will be served in.
	Locale Locale
}

// Route classifies a request path. It is total: every input yields a decision.
//
// Rules, first match wins:
//
//	/kr, /kr/...        redirect to the path without /kr ("/" when empty)
//	/en, /en/...        pass-through
//	unprefixed, kr      rewrite to /kr + path
//	unprefixed, en      redirect to /en + path
func Route(path, acceptLanguage string, cfg Config) Decision {
	if path == "" || path[0] != '/' {
		path = "/" + path
	}

	if l, rest, ok := SplitLocale(path, cfg); ok {
		if l == cfg.Default {
			return Decision{Action: Redirect, Path: rest, Locale: l}
		}
		return Decision{Action: PassThrough, Path: path, Locale: l}
	}

	l := ResolveLocale(acceptLanguage, cfg)
	target := withPrefix(l, path)
	if l == cfg.Default {
		return Decision{Action: Rewrite, Path: target, Locale: l}
	}
	return Decision{Action: Redirect, Path: target, Locale: l}
}

// SplitLocale detects a leading locale segment.
// It returns the locale and the remaining path ("/" when nothing is left).
// Only whole segments match: "/krx" has no locale. Leading slashes and
// backslashes of the remainder collapse into one, so "/kr//host" yields
// "/host" and never a scheme-relative URL.
func SplitLocale(path string, cfg Config) (Locale, string, bool) {
	for _, l := range cfg.Locales {
		prefix := "/" + string(l)
		if path == prefix {
			return l, "/", true
		}
		if rest, ok := strings.CutPrefix(path, prefix+"/"); ok {
			return l, "/" + strings.TrimLeft(rest, `/\`), true
		}
	}
	return "", path, false
}

// LocalizedPath builds the visible URL of path for locale l.
// The default locale is never prefixed.
func LocalizedPath(path string, l Locale, cfg Config) string {
	if path == "" {
		path = "/"
	}
	if l == cfg.Default || !cfg.IsSupported(l) {
		return path
	}
	return withPrefix(l, path)
}

func withPrefix(l Locale, path string) string {
	if path == "/" {
		return "/" + string(l)
	}
	return "/" + string(l) + path
}
