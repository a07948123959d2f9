package generation

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"galaxy-server/internal/stellar"
)

var ErrStarNotFound = errors.New("star not found")

// Engine is everything the query layer needs from a generator bound to one
// seed and configuration. Implementations are immutable after construction
// and safe for concurrent use.
type Engine interface {
	Seed() uint64
	Config() Config
	GalaxyRadius() float64

	// GetGalacticStructure returns up to maxStars representative stars,
	// most salient first.
	GetGalacticStructure(maxStars int) []stellar.Star

	// EstimateTotalStars integrates the density model with blocks of edge
	// referenceRadius light-years.
	EstimateTotalStars(referenceRadius float64) float64

	// GetNearbyStars returns stars within radius of center, closest first,
	// at most maxStars of them.
	GetNearbyStars(center stellar.Vec3, radius float64, maxStars int) []stellar.Star

	// GetStarSystem resolves a star identifier to its full system. Unknown
	// identifiers yield ErrStarNotFound.
	GetStarSystem(q stellar.SystemQuery) (*stellar.StarSystem, error)
}

// Factory builds an engine for a seed and configuration.
type Factory func(seed uint64, cfg Config) (Engine, error)

// NewEngine is the default Factory.
func NewEngine(seed uint64, cfg Config) (Engine, error) {
	return NewWithConfig(seed, cfg)
}

// Generator is the procedural reference engine. Stars are never stored;
// each query regenerates the cells it touches from the seed.
type Generator struct {
	seed uint64
	cfg  Config

	pitchTan float64

	estimatesMu sync.Mutex
	estimates   map[float64]float64
}

var _ Engine = (*Generator)(nil)

func New(seed uint64) (*Generator, error) {
	return NewWithConfig(seed, DefaultConfig())
}

func NewWithConfig(seed uint64, cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	g := &Generator{
		seed:      seed,
		cfg:       cfg,
		estimates: make(map[float64]float64),
	}
	if cfg.SpiralArms > 0 {
		g.pitchTan = math.Tan(cfg.ArmPitchDegrees * math.Pi / 180)
	}
	return g, nil
}

func (g *Generator) Seed() uint64 {
	return g.seed
}

func (g *Generator) Config() Config {
	return g.cfg
}

func (g *Generator) GalaxyRadius() float64 {
	return g.cfg.GalaxyRadius
}

func (g *Generator) GetStarSystem(q stellar.SystemQuery) (*stellar.StarSystem, error) {
	cell, index, member := decodeID(q.StarID)
	if !cell.valid() || member >= maxMembers {
		return nil, ErrStarNotFound
	}
	if index >= g.cellPopulation(cell) {
		return nil, ErrStarNotFound
	}

	primary := g.fieldStar(cell, index)
	system := g.buildSystem(primary)
	if member >= len(system.Stars) {
		return nil, ErrStarNotFound
	}
	system.StarID = q.StarID
	return system, nil
}
