package v1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/opengi/papergen/api/v1"
	"github.com/opengi/papergen/internal/service"
	"go.uber.org/zap"
)

// (POST /api/v1/sessions/{id}/papers)
func (h *ServiceHandler) GeneratePapers(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("paper_handler")

	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	var form api.GenerationForm
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	papers, err := h.paperSrv.Generate(r.Context(), sessionID, service.GenerationForm{
		Date:      form.Date,
		Signature: form.Signature,
	})
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			renderError(w, r, http.StatusNotFound, err.Error())
		case *service.ErrInvalidGenerationForm:
			logger.Warnf("generation rejected: %v", err)
			renderError(w, r, http.StatusBadRequest, err.Error())
		default:
			logger.Errorf("failed to submit generation: %v", err)
			renderError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, paperListToApi(papers))
}

// (GET /api/v1/sessions/{id}/papers)
func (h *ServiceHandler) ListPapers(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	papers, err := h.paperSrv.Statuses(r.Context(), sessionID)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			renderError(w, r, http.StatusNotFound, err.Error())
		default:
			renderError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	render.JSON(w, r, paperListToApi(papers))
}
