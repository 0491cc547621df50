package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appCtx "github.com/thorryuk/Sekai---Backend/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID establishes a correlation ID for the request. Incoming IDs are
// honored so callers can trace a request across services; propagation to the
// table store happens in the client.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)

		ctx := appCtx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
