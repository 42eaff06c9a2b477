package session

import "context"

type sessionContextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}

// UserIDFromContext returns the user id of an authenticated session.
func UserIDFromContext(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok || !s.IsAuthenticated() {
		return "", false
	}
	return s.UserID, true
}
