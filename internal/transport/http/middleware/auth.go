package middleware

import (
	"net/http"
	"strings"

	"github.com/thorryuk/Sekai---Backend/internal/application/auth"
	"github.com/thorryuk/Sekai---Backend/internal/domain"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/response"
)

type TokenVerifier interface {
	Verify(token string, kind auth.TokenKind) (auth.TokenClaims, error)
}

// Gate verifies Authorization: Bearer <token> of the given kind and injects
// the caller's identity into the request context. Data routes gate on access
// tokens; the refresh endpoint gates on refresh tokens.
func Gate(verifier TokenVerifier, kind auth.TokenKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				response.Error(w, r, domain.ErrTokenMissing())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.Error(w, r, domain.ErrTokenInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				response.Error(w, r, domain.ErrTokenInvalid())
				return
			}

			claims, err := verifier.Verify(raw, kind)
			if err != nil {
				response.Error(w, r, err)
				return
			}

			if strings.TrimSpace(claims.UserID) == "" {
				response.Error(w, r, domain.ErrTokenInvalid())
				return
			}

			ctx := WithIdentity(r.Context(), domain.Identity{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
