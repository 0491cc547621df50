package auth

import (
	"context"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
)

// RefreshAccess issues a new access token for an identity that already
// presented a valid refresh token. Refresh tokens are not rotated: the
// caller keeps the same one until it expires.
func (s *Service) RefreshAccess(ctx context.Context, id domain.Identity) (string, error) {
	access, err := s.signer.Sign(TokenAccess, id.UserID, id.Role, s.accessTTL)
	if err != nil {
		return "", err
	}
	return access, nil
}
