package response

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/thorryuk/Sekai---Backend/internal/domain"
)

// DecodeJSON decodes a JSON request body into dst.
// Unknown fields are allowed, payloads are forwarded as the client sent them.
func DecodeJSON(r *http.Request, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	return nil
}
