package v1

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	api "github.com/opengi/papergen/api/v1"
	"github.com/opengi/papergen/internal/service"
)

// (POST /api/v1/sessions/{id}/selection/{rowId}/toggle)
func (h *ServiceHandler) ToggleRow(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	rowIdx, err := strconv.Atoi(chi.URLParam(r, "rowId"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid row id")
		return
	}

	if err := h.selectionSrv.Toggle(r.Context(), sessionID, rowIdx); err != nil {
		h.renderSelectionError(w, r, err)
		return
	}

	h.renderSelection(w, r, sessionID)
}

// (POST /api/v1/sessions/{id}/selection/select-all)
func (h *ServiceHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	if err := h.selectionSrv.SelectAll(r.Context(), sessionID); err != nil {
		h.renderSelectionError(w, r, err)
		return
	}

	h.renderSelection(w, r, sessionID)
}

// (POST /api/v1/sessions/{id}/selection/clear)
func (h *ServiceHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	if err := h.selectionSrv.ClearAll(r.Context(), sessionID); err != nil {
		h.renderSelectionError(w, r, err)
		return
	}

	h.renderSelection(w, r, sessionID)
}

// (GET /api/v1/sessions/{id}/selection)
func (h *ServiceHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	h.renderSelection(w, r, sessionID)
}

func (h *ServiceHandler) renderSelection(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) {
	selected, err := h.selectionSrv.Selected(r.Context(), sessionID)
	if err != nil {
		h.renderSelectionError(w, r, err)
		return
	}

	render.JSON(w, r, api.Selection{SessionId: sessionID.String(), Selected: selected})
}

func (h *ServiceHandler) renderSelectionError(w http.ResponseWriter, r *http.Request, err error) {
	switch err.(type) {
	case *service.ErrResourceNotFound:
		renderError(w, r, http.StatusNotFound, err.Error())
	default:
		renderError(w, r, http.StatusInternalServerError, err.Error())
	}
}
