package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
	"galaxy-server/internal/stellar"
	"galaxy-server/internal/system"
)

type SystemHandler struct {
	projector *system.Projector
}

func NewSystemHandler(projector *system.Projector) *SystemHandler {
	return &SystemHandler{projector: projector}
}

func (h *SystemHandler) GetStarSystem(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_star_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	starIDStr := r.PathValue("id")
	if starIDStr == "" {
		response.Error(w, r, logger, errors.Validation("star ID is required"))
		return
	}

	starID, err := strconv.ParseUint(starIDStr, 10, 64)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid star ID format", err))
		return
	}

	hint, err := positionHint(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	rec, err := h.projector.GetStarSystem(starID, hint)
	if err != nil && errors.GetType(err) != errors.ErrorTypeUnavailable {
		response.Error(w, r, logger, err)
		return
	}
	if err != nil {
		logger.Warn("Star system requested before engine initialization")
	}

	response.Success(w, http.StatusOK, rec)
}

// positionHint reads the optional x, y and z query parameters. Either all
// three are present or none.
func positionHint(r *http.Request) (*stellar.Vec3, error) {
	q := r.URL.Query()
	if !q.Has("x") && !q.Has("y") && !q.Has("z") {
		return nil, nil
	}

	var hint stellar.Vec3
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"x", &hint.X},
		{"y", &hint.Y},
		{"z", &hint.Z},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			return nil, errors.Validationf("position hint requires x, y and z; %s is missing", p.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.WrapValidation("invalid "+p.name, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Validationf("%s must be finite", p.name)
		}
		*p.dst = v
	}
	return &hint, nil
}
