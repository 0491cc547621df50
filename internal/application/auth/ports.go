package auth

import (
	"context"
	"time"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth flow needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2. Users are provisioned outside this service,
so login only ever compares against a stored hash.
*/
type PasswordHasher interface {
	Compare(hash string, password string) error // nil if match
}

// TokenKind distinguishes access tokens from refresh tokens.
// A refresh token must never pass an access gate, and the reverse.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

/*
TokenSigner
-----------
Issues and verifies tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID string
	Role   string
	Kind   TokenKind
	Exp    time.Time
}

type TokenSigner interface {
	Sign(kind TokenKind, userID string, role string, ttl time.Duration) (string, error)
	Verify(token string, kind TokenKind) (TokenClaims, error)
}
