package v1

import (
	"net/http"

	"github.com/go-chi/render"
	api "github.com/opengi/papergen/api/v1"
	"github.com/opengi/papergen/pkg/version"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	render.JSON(w, r, api.Info{
		VersionName: versionInfo.GitVersion,
		GitCommit:   versionInfo.GitCommit,
	})
}

// (GET /api/v1/health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
