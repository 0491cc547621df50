package handlers

import (
	"net/http"

	"github.com/thorryuk/Sekai---Backend/internal/application/auth"
	"github.com/thorryuk/Sekai---Backend/internal/domain"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/dto"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/middleware"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	toks, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.LoginResponse{
		AccessToken:  toks.AccessToken,
		RefreshToken: toks.RefreshToken,
	})
}

// Refresh handles POST /refresh. The refresh gate already verified the
// token, so the identity comes from context.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, r, domain.ErrTokenInvalid())
		return
	}

	access, err := h.svc.RefreshAccess(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, dto.RefreshResponse{AccessToken: access})
}
