package handlers

import (
	"net/http"

	"github.com/thorryuk/Sekai---Backend/internal/transport/http/response"
)

// Health handles GET /healthz. The service holds no local state, so
// being up is being healthy.
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
