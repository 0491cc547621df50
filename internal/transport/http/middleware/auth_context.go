package middleware

import (
	"context"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
)

type ctxKeyIdentity struct{}

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, id)
}

func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity{}).(domain.Identity)
	return id, ok && id.UserID != ""
}
