package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "rsvp/internal/delivery/http/helpers"
	"rsvp/internal/delivery/http/middleware"
	"rsvp/internal/domain"
)

// SignUpRequest is the request body for POST /auth/signup
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator. Format and strength rules belong to the identity provider.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Email) == "" {
		errs = append(errs, "email is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SignInRequest is the request body for POST /auth/signin
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l SignInRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SignInResponse is the response body for POST /auth/signup and POST /auth/signin
type SignInResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	Identity  *domain.Session `json:"identity"`
}

// SessionResponse is the response body for GET /auth/session. Identity is null when signed out.
type SessionResponse struct {
	Identity  *domain.Session `json:"identity"`
	IsLoading bool            `json:"isLoading"`
}

type AuthController struct {
	Logger        *slog.Logger
	Service       domain.IdentityProvider
	SecureCookies bool
}

func NewAuthController(logger *slog.Logger, svc domain.IdentityProvider, secureCookies bool) *AuthController {
	return &AuthController{
		Logger:        logger,
		Service:       svc,
		SecureCookies: secureCookies,
	}
}

// SignUp godoc
// @Summary Create an organizer account
// @Description Create an account with email and password (at least 6 characters) and start a session. The token is returned and also set as the HttpOnly "session" cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} helpers.APIResponse "data contains token, token_type and identity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request; error.message is the provider's message"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.CreateAccount(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) || errors.Is(err, domain.ErrWeakPassword) || errors.Is(err, domain.ErrDuplicateEmail) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not create account")
		return
	}
	c.setSessionCookie(w, res.Token, res.Session.ExpiresAt)
	h.WriteJSONSuccess(w, http.StatusCreated, SignInResponse{Token: res.Token, TokenType: "Bearer", Identity: res.Session})
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticate with email and password and start a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type and identity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signin [post]
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not sign in")
		return
	}
	c.setSessionCookie(w, res.Token, res.Session.ExpiresAt)
	h.WriteJSONSuccess(w, http.StatusOK, SignInResponse{Token: res.Token, TokenType: "Bearer", Identity: res.Session})
}

// SignOut godoc
// @Summary Sign out
// @Description Revoke the caller's session, if any, and clear the session cookie. Always succeeds.
// @Tags auth
// @Security BearerAuth
// @Success 204 "signed out"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signout [post]
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromRequest(r); token != "" {
		session, err := c.Service.CurrentSession(r.Context(), token)
		switch {
		case err == nil:
			if err := c.Service.SignOut(r.Context(), session); err != nil {
				c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not sign out")
				return
			}
		case !errors.Is(err, domain.ErrUnauthorized):
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not sign out")
			return
		}
	}
	c.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Session godoc
// @Summary Current identity
// @Description Returns the signed-in identity, or null. isLoading is always false: the session is resolved before responding.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains identity and isLoading"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/session [get]
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token == "" {
		h.WriteJSONSuccess(w, http.StatusOK, SessionResponse{})
		return
	}
	session, err := c.Service.CurrentSession(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.WriteJSONSuccess(w, http.StatusOK, SessionResponse{})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "could not load session")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SessionResponse{Identity: session})
}

func (c *AuthController) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *AuthController) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
