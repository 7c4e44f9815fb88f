package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	api "github.com/opengi/papergen/api/v1"
	"github.com/opengi/papergen/internal/service"
	"github.com/opengi/papergen/pkg/requestid"
)

type ServiceHandler struct {
	sessionSrv    *service.SessionService
	selectionSrv  *service.SelectionService
	paperSrv      *service.PaperService
	maxUploadSize int64
}

func NewServiceHandler(
	sessionSrv *service.SessionService,
	selectionSrv *service.SelectionService,
	paperSrv *service.PaperService,
	maxUploadSize int64,
) *ServiceHandler {
	return &ServiceHandler{
		sessionSrv:    sessionSrv,
		selectionSrv:  selectionSrv,
		paperSrv:      paperSrv,
		maxUploadSize: maxUploadSize,
	}
}

func (h *ServiceHandler) Routes(router chi.Router) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/info", h.GetInfo)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Get("/", h.ListSessions)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Get("/rows", h.ListRows)

				r.Route("/selection", func(r chi.Router) {
					r.Get("/", h.GetSelection)
					r.Post("/{rowId}/toggle", h.ToggleRow)
					r.Post("/select-all", h.SelectAll)
					r.Post("/clear", h.ClearSelection)
				})

				r.Route("/papers", func(r chi.Router) {
					r.Post("/", h.GeneratePapers)
					r.Get("/", h.ListPapers)
				})
			})
		})
	})
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.Error{Message: message, RequestId: requestid.FromContextPtr(r.Context())})
}
