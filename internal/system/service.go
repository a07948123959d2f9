package system

import (
	stderrors "errors"
	"log/slog"

	"galaxy-server/internal/generation"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/stellar"
)

type Projector struct {
	source EngineSource
	logger *slog.Logger
}

func NewProjector(source EngineSource, logger *slog.Logger) *Projector {
	logger.Debug("Initializing system projector")

	return &Projector{
		source: source,
		logger: logger.With("component", "system_projector"),
	}
}

// GetStarSystem builds the record for starID. The position hint is passed
// through to the engine but plays no part in the lookup. Before an engine is
// bound it returns an empty record carrying a diagnostic together with the
// unavailable error.
func (p *Projector) GetStarSystem(starID uint64, hint *stellar.Vec3) (*Record, error) {
	logger := p.logger.With("operation", "get_star_system", "star_id", starID)

	engine, err := p.source.Engine()
	if err != nil {
		return emptyRecord(starID, err.Error()), err
	}

	sys, err := engine.GetStarSystem(stellar.SystemQuery{StarID: starID, Position: hint})
	if stderrors.Is(err, generation.ErrStarNotFound) {
		return nil, errors.NotFoundf("star %d not found", starID)
	}
	if err != nil {
		return nil, errors.WrapInternal("failed to generate star system", err)
	}

	rec := Project(sys)

	logger.Info("Star system generated",
		"configuration", rec.Configuration.Type,
		"stars", len(sys.Stars),
		"planets", sys.PlanetCount(),
		"moons", sys.MoonCount(),
		"asteroid_belts", len(sys.AsteroidBelts),
		"oort_cloud", sys.OortCloud != nil,
	)

	return &rec, nil
}
