package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thorryuk/Sekai---Backend/internal/application/records"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/dto"
	"github.com/thorryuk/Sekai---Backend/internal/transport/http/response"
)

// RecordsHandler exposes CRUD over one resource. Payloads are opaque:
// whatever JSON the client sends is forwarded to the table store as-is,
// and rows come back exactly as the store returned them.
type RecordsHandler struct {
	svc *records.Service
	res records.Resource
}

func NewRecordsHandler(svc *records.Service, res records.Resource) *RecordsHandler {
	return &RecordsHandler{svc: svc, res: res}
}

// List handles GET /{resource}. The body is the bare row array.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context(), h.res)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, rows)
}

// Create handles POST /{resource}. Returns the created rows as the
// store reports them, array included.
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := response.DecodeJSON(r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}

	rows, err := h.svc.Create(r.Context(), h.res, payload)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, rows)
}

// Get handles GET /{resource}/{id}.
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	row, err := h.svc.GetByID(r.Context(), h.res, id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, row)
}

// Update handles PUT /{resource}/{id}. Partial payloads are fine, the
// store patches only the provided columns.
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload map[string]any
	if err := response.DecodeJSON(r, &payload); err != nil {
		response.Error(w, r, err)
		return
	}

	row, err := h.svc.Update(r.Context(), h.res, id, payload)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, row)
}

// Delete handles DELETE /{resource}/{id}.
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), h.res, id); err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.MessageResponse{Message: h.res.Name + " deleted successfully"})
}

// Report handles GET /reports/{resource}: the same rows as List,
// wrapped under a report key.
func (h *RecordsHandler) Report(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context(), h.res)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"report": rows})
}
