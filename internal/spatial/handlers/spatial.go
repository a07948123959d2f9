package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"galaxy-server/internal/columnar"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
	"galaxy-server/internal/spatial"
	"galaxy-server/internal/stellar"
)

const DefaultStructureMaxStars = 10000

type StructureResponse struct {
	columnar.Columns
	MaxStars            int    `json:"max_stars"`
	EstimatedTotalStars int64  `json:"estimated_total_stars"`
	Diagnostic          string `json:"diagnostic,omitempty"`
}

type NearbyResponse struct {
	columnar.Columns
	Query      spatial.NearbyQuery `json:"query"`
	Diagnostic string              `json:"diagnostic,omitempty"`
}

type SpatialHandler struct {
	service *spatial.Service
}

func NewSpatialHandler(service *spatial.Service) *SpatialHandler {
	return &SpatialHandler{service: service}
}

func (h *SpatialHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_structure")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	maxStars, err := intParam(r.URL.Query(), "max_stars", DefaultStructureMaxStars)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	result, err := h.service.GetStructure(maxStars)
	if err != nil && errors.GetType(err) != errors.ErrorTypeUnavailable {
		response.Error(w, r, logger, err)
		return
	}
	if err != nil {
		logger.Warn("Structure requested before engine initialization")
	}

	response.Success(w, http.StatusOK, StructureResponse{
		Columns:             columnar.FromStars(result.Stars),
		MaxStars:            result.MaxStars,
		EstimatedTotalStars: result.EstimatedTotalStars,
		Diagnostic:          result.Diagnostic,
	})
}

func (h *SpatialHandler) GetNearbyStars(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_nearby_stars")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	q := r.URL.Query()
	var center stellar.Vec3
	var radius float64
	var err error

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"x", &center.X},
		{"y", &center.Y},
		{"z", &center.Z},
		{"radius", &radius},
	} {
		if *p.dst, err = floatParam(q, p.name); err != nil {
			response.Error(w, r, logger, err)
			return
		}
	}

	maxStars, err := intParam(q, "max_stars", spatial.DefaultNearbyMaxStars)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	result, err := h.service.GetNearbyStars(center, radius, maxStars)
	if err != nil && errors.GetType(err) != errors.ErrorTypeUnavailable {
		response.Error(w, r, logger, err)
		return
	}
	if err != nil {
		logger.Warn("Nearby stars requested before engine initialization")
	}

	response.Success(w, http.StatusOK, NearbyResponse{
		Columns:    columnar.FromStars(result.Stars),
		Query:      result.Query,
		Diagnostic: result.Diagnostic,
	})
}

func floatParam(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, errors.Validationf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Validationf("%s must be finite", name)
	}
	return v, nil
}

func intParam(q url.Values, name string, fallback int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name, err)
	}
	return v, nil
}
