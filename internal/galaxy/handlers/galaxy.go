package handlers

import (
	"log/slog"
	"net/http"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type GalaxyHandler struct {
	service *galaxy.Service
}

func NewGalaxyHandler(service *galaxy.Service) *GalaxyHandler {
	return &GalaxyHandler{service: service}
}

func (h *GalaxyHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_galaxy_overview")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	overview, err := h.service.GetOverview()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, overview)
}
