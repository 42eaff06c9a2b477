// Package session keeps server-side sessions keyed by an opaque token.
//
// The token travels in an encrypted cookie (see pkg/cookie). Session records
// live in a Store: MemoryStore for development and tests, RedisStore in
// production. Anonymous and authenticated sessions have separate idle and
// absolute lifetimes; Authenticate rotates the token to prevent fixation.
//
//	mgr := session.New(store, session.NewCookieTransport(cookies, cfg.CookieName), session.WithConfig(cfg))
//	r.Use(mgr.Middleware)
//	sess, ok := session.FromContext(r.Context())
package session
