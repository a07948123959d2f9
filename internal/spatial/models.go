package spatial

import (
	"galaxy-server/internal/generation"
	"galaxy-server/internal/stellar"
)

const (
	// ReferenceRadius is the block edge handed to the engine's star count
	// estimate.
	ReferenceRadius = 500.0

	DefaultNearbyMaxStars = 10000
)

// EngineSource hands out the currently bound engine.
type EngineSource interface {
	Engine() (generation.Engine, error)
}

type StructureResult struct {
	Stars               []stellar.Star
	MaxStars            int
	EstimatedTotalStars int64
	Diagnostic          string
}

// NearbyQuery records what was asked for and what was actually used.
type NearbyQuery struct {
	Center            stellar.Vec3 `json:"center"`
	RequestedRadius   float64      `json:"requested_radius"`
	EffectiveRadius   float64      `json:"effective_radius"`
	RadiusClamped     bool         `json:"radius_clamped"`
	RequestedMaxStars int          `json:"requested_max_stars"`
	EffectiveMaxStars int          `json:"effective_max_stars"`
}

type NearbyResult struct {
	Stars      []stellar.Star
	Query      NearbyQuery
	Diagnostic string
}
