package middleware

import (
	"context"
	"net/http"
	"strings"

	"rsvp/internal/domain"
)

// SessionCookieName is the HttpOnly cookie carrying the session token for browser clients.
const SessionCookieName = "session"

type contextKey string

const sessionKey contextKey = "session"

// SessionResolver turns a bearer token into an active session.
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)
}

// SetSession returns a context carrying the authenticated session.
func SetSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromContext returns the session set by Guard, if present.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*domain.Session)
	return s, ok && s != nil
}

// TokenFromRequest returns the session token from the Authorization header,
// falling back to the session cookie. It returns "" if neither is usable.
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			return ""
		}
		return strings.TrimSpace(auth[len(prefix):])
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}
