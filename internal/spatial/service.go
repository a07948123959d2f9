package spatial

import (
	"cmp"
	"log/slog"
	"math"
	"slices"

	"galaxy-server/internal/stellar"
)

type Service struct {
	source EngineSource
	logger *slog.Logger
}

func NewService(source EngineSource, logger *slog.Logger) *Service {
	logger.Debug("Initializing spatial service")

	return &Service{
		source: source,
		logger: logger.With("component", "spatial_service"),
	}
}

// GetStructure returns up to maxStars of the most salient stars of the
// galaxy together with an estimate of the total star count. A non-positive
// maxStars yields no stars but still computes the estimate.
func (s *Service) GetStructure(maxStars int) (StructureResult, error) {
	limit := max(maxStars, 0)
	logger := s.logger.With("operation", "get_structure", "max_stars", limit)

	engine, err := s.source.Engine()
	if err != nil {
		return StructureResult{Stars: []stellar.Star{}, MaxStars: limit, Diagnostic: err.Error()}, err
	}

	var stars []stellar.Star
	if limit > 0 {
		stars = slices.Clone(engine.GetGalacticStructure(limit))
	}
	slices.SortStableFunc(stars, stellar.CompareSalience)
	if len(stars) > limit {
		stars = stars[:limit]
	}
	if stars == nil {
		stars = []stellar.Star{}
	}

	estimate := engine.EstimateTotalStars(ReferenceRadius)
	if math.IsNaN(estimate) || estimate < 0 {
		estimate = 0
	}
	total := int64(math.Round(math.Min(estimate, 1<<62)))

	logger.Info("Galactic structure generated",
		"count", len(stars),
		"estimated_total_stars", total,
	)

	return StructureResult{
		Stars:               stars,
		MaxStars:            limit,
		EstimatedTotalStars: total,
	}, nil
}

// GetNearbyStars returns stars within radius of center, closest first. The
// radius is clamped to the engine's nearby maximum before it reaches the
// engine; negative or NaN radii become 0.
func (s *Service) GetNearbyStars(center stellar.Vec3, radius float64, maxStars int) (NearbyResult, error) {
	logger := s.logger.With("operation", "get_nearby_stars")

	query := NearbyQuery{
		Center:            center,
		RequestedRadius:   radius,
		RequestedMaxStars: maxStars,
		EffectiveMaxStars: max(maxStars, 0),
	}

	engine, err := s.source.Engine()
	if err != nil {
		query.EffectiveRadius = sanitizeRadius(radius)
		return NearbyResult{Stars: []stellar.Star{}, Query: query, Diagnostic: err.Error()}, err
	}

	limit := engine.Config().NearbyMaxRadius
	effective := sanitizeRadius(radius)
	if effective > limit {
		effective = limit
		query.RadiusClamped = true
	}
	query.EffectiveRadius = effective

	if query.RadiusClamped {
		logger.Debug("Nearby radius clamped",
			"requested_radius", radius,
			"effective_radius", effective,
		)
	}

	type candidate struct {
		star stellar.Star
		dist float64
	}
	var found []candidate
	if query.EffectiveMaxStars > 0 {
		for _, star := range engine.GetNearbyStars(center, effective, query.EffectiveMaxStars) {
			if d := star.Position.DistanceTo(center); d <= effective {
				found = append(found, candidate{star: star, dist: d})
			}
		}
	}

	slices.SortStableFunc(found, func(a, b candidate) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.star.ID, b.star.ID)
	})
	if len(found) > query.EffectiveMaxStars {
		found = found[:query.EffectiveMaxStars]
	}

	stars := make([]stellar.Star, len(found))
	for i, f := range found {
		stars[i] = f.star
	}

	logger.Info("Nearby stars found",
		"center", center,
		"requested_radius", radius,
		"effective_radius", effective,
		"max_stars", query.EffectiveMaxStars,
		"count", len(stars),
	)

	return NearbyResult{Stars: stars, Query: query}, nil
}

func sanitizeRadius(radius float64) float64 {
	if math.IsNaN(radius) || radius < 0 {
		return 0
	}
	return radius
}
