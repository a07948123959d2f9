package galaxy

import (
	"log/slog"
)

type Service struct {
	source StateSource
	logger *slog.Logger
}

func NewService(source StateSource, logger *slog.Logger) *Service {
	logger.Debug("Initializing galaxy service")

	return &Service{
		source: source,
		logger: logger,
	}
}

// GetOverview describes the current galaxy. The radius is 0 until an
// engine is bound.
func (s *Service) GetOverview() (Overview, error) {
	state := s.source.State()
	overview := Overview{
		Seed:    state.Seed,
		Bound:   state.Bound,
		BoundAt: state.BoundAt,
		Config:  state.Config,
	}

	if !state.Bound {
		return overview, nil
	}

	engine, err := s.source.Engine()
	if err != nil {
		return Overview{}, err
	}

	overview.GalaxyRadius = engine.GalaxyRadius()
	overview.Config = engine.Config()
	return overview, nil
}
