package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "rsvp/internal/delivery/http/helpers"
	"rsvp/internal/domain"
)

// SignInPath is where unauthenticated callers are sent.
const SignInPath = "/signin"

// Guard returns a wrapper that resolves the caller's session and places it in
// the request context. Without an active session it redirects browsers to
// SignInPath with 303 and answers API clients with 401 plus a Location header.
func Guard(resolver SessionResolver, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				denySignedOut(w, r)
				return
			}
			session, err := resolver.CurrentSession(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.ErrorContext(r.Context(), "resolve session", "path", r.URL.Path, "method", r.Method, "err", err)
				}
				denySignedOut(w, r)
				return
			}
			next(w, r.WithContext(SetSession(r.Context(), session)))
		}
	}
}

func denySignedOut(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		http.Redirect(w, r, SignInPath, http.StatusSeeOther)
		return
	}
	w.Header().Set("Location", SignInPath)
	h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "sign in required")
}

// wantsHTML reports whether the client is a browser navigating to the page.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
