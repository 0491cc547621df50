package auth

import (
	"context"
	"strings"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
)

// Login authenticates a user and issues an access + refresh token pair.
// IMPORTANT: must not leak whether the username exists (avoid user enumeration).
func (s *Service) Login(ctx context.Context, username, password string) (Tokens, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return Tokens{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Hide not-found behind invalid credentials. Store failures are
		// not credential problems and keep their own kind.
		if domain.Is(err, "user_not_found") {
			return Tokens{}, domain.ErrInvalidCredentials()
		}
		return Tokens{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return Tokens{}, domain.ErrInvalidCredentials()
	}

	access, err := s.signer.Sign(TokenAccess, u.ID, u.Role, s.accessTTL)
	if err != nil {
		return Tokens{}, err
	}

	refresh, err := s.signer.Sign(TokenRefresh, u.ID, u.Role, s.refreshTTL)
	if err != nil {
		return Tokens{}, err
	}

	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
