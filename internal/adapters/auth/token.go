package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"rsvp/internal/domain"
)

// ErrBadToken is returned for tokens that fail signature, algorithm or claim checks.
var ErrBadToken = errors.New("invalid token")

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type jwtSigner struct {
	secret []byte
}

// NewJWTSigner returns a signer that issues and verifies HS256 session tokens.
// The session id travels as the jti claim so the token can be revoked server-side.
func NewJWTSigner(secret string) *jwtSigner {
	return &jwtSigner{secret: []byte(secret)}
}

var (
	_ domain.TokenIssuer   = (*jwtSigner)(nil)
	_ domain.TokenVerifier = (*jwtSigner)(nil)
)

func (s *jwtSigner) Issue(sessionID, userID, email string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *jwtSigner) Verify(raw string) (*domain.SessionClaims, error) {
	tok, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	c, ok := tok.Claims.(*sessionClaims)
	if !ok || !tok.Valid || c.ID == "" || c.Subject == "" || c.ExpiresAt == nil {
		return nil, ErrBadToken
	}
	return &domain.SessionClaims{
		SessionID: c.ID,
		UserID:    c.Subject,
		Email:     c.Email,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
