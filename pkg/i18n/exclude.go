package i18n

import "strings"

// Matcher selects paths that bypass locale routing.
type Matcher struct {
	// Prefixes are matched on whole segments: "/auth" matches "/auth" and
	// "/auth/google" but not "/author".
	Prefixes []string

	// SkipDotted excludes any path containing a dot (static files).
	SkipDotted bool
}

// DefaultExclude returns the exclusions used by the application:
// the JSON API, static assets, internal endpoints and auth handlers.
func DefaultExclude() Matcher {
	return Matcher{
		Prefixes:   []string{"/api", "/static", "/_internal", "/metrics", "/health", "/auth"},
		SkipDotted: true,
	}
}

// Match reports whether path is excluded.
func (m Matcher) Match(path string) bool {
	if m.SkipDotted {
		if strings.Contains(path, ".") {
			return true
		}
	}
	for _, p := range m.Prefixes {
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
