package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/opengi/papergen/internal/service"
	"go.uber.org/zap"
)

// (POST /api/v1/sessions)
func (h *ServiceHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	logger := zap.S().Named("session_handler")

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			renderError(w, r, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
			return
		}
		renderError(w, r, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "missing file field in multipart form")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	session, err := h.sessionSrv.CreateSession(r.Context(), header.Filename, content)
	if err != nil {
		switch err.(type) {
		case *service.ErrUnsupportedFormat, *service.ErrFileCorrupted:
			logger.Warnf("upload rejected: %v", err)
			renderError(w, r, http.StatusBadRequest, err.Error())
		default:
			logger.Errorf("failed to create session: %v", err)
			renderError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, sessionToApi(session, len(session.Rows)))
}

// (GET /api/v1/sessions)
func (h *ServiceHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionSrv.ListSessions(r.Context())
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	render.JSON(w, r, sessionListToApi(sessions))
}

// (GET /api/v1/sessions/{id})
func (h *ServiceHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	session, err := h.sessionSrv.GetSession(r.Context(), sessionID)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			renderError(w, r, http.StatusNotFound, err.Error())
		default:
			renderError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	rows, err := h.sessionSrv.ListRows(r.Context(), sessionID)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, r, sessionToApi(session, len(rows)))
}

// (DELETE /api/v1/sessions/{id})
func (h *ServiceHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessionSrv.DeleteSession(r.Context(), sessionID); err != nil {
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	render.NoContent(w, r)
}

// (GET /api/v1/sessions/{id}/rows)
func (h *ServiceHandler) ListRows(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := parseSessionID(w, r)
	if !ok {
		return
	}

	rows, err := h.sessionSrv.ListRows(r.Context(), sessionID)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			renderError(w, r, http.StatusNotFound, err.Error())
		default:
			renderError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	papers, err := h.paperSrv.Statuses(r.Context(), sessionID)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, r, rowListToApi(rows, papers))
}

func parseSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, r, http.StatusBadRequest, "invalid session id")
		return uuid.UUID{}, false
	}
	return sessionID, true
}
