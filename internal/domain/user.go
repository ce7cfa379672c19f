package domain

import (
	"context"
	"time"
)

// User is an organizer account held by the identity provider.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, passwordHash, salt string, createdAt time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
	}
}

// Session is the authenticated identity of the current caller. It is passed
// explicitly through the request context rather than held globally.
// swagger:model Session
type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"uid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionClaims are the verified contents of a session token.
type SessionClaims struct {
	SessionID string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed session tokens.
type TokenIssuer interface {
	Issue(sessionID, userID, email string, expiresAt time.Time) (string, error)
}

// TokenVerifier verifies a session token's signature and expiry.
type TokenVerifier interface {
	Verify(token string) (*SessionClaims, error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	// Create inserts u and sets u.ID. Returns ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// SessionRepository stores active sessions so they can be revoked on sign-out.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// SignInResult is returned by sign-up and sign-in.
type SignInResult struct {
	Token   string   `json:"token"`
	Session *Session `json:"identity"`
}

// IdentityProvider creates accounts, authenticates, and manages sessions.
// Error messages are meant to be shown to the user verbatim.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (*SignInResult, error)
	Authenticate(ctx context.Context, email, password string) (*SignInResult, error)
	SignOut(ctx context.Context, session *Session) error
	// CurrentSession resolves a bearer token to an active session.
	CurrentSession(ctx context.Context, token string) (*Session, error)
}
