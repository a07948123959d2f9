package session

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"galaxy-server/internal/generation"
	"galaxy-server/internal/shared/errors"
)

// ErrEngineNotInitialized is returned by queries made before the first bind.
var ErrEngineNotInitialized = errors.Unavailable("engine not initialized")

// Binding is either Unbound or Bound.
type Binding interface {
	isBinding()
}

type Unbound struct{}

type Bound struct {
	Engine  generation.Engine
	BoundAt time.Time
}

func (Unbound) isBinding() {}
func (Bound) isBinding()   {}

// State is a consistent copy of the session taken under one lock.
type State struct {
	Seed    int64             `json:"seed"`
	Bound   bool              `json:"bound"`
	BoundAt *time.Time        `json:"bound_at,omitempty"`
	Config  generation.Config `json:"config"`
}

// Session owns the seed, the generator config and the engine built from
// them. Every successful mutation replaces the engine with a new one; an
// engine is never modified after it is built.
type Session struct {
	mu      sync.RWMutex
	seed    int64
	config  generation.Config
	binding Binding

	factory generation.Factory
	store   Store
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Session)

func WithFactory(f generation.Factory) Option {
	return func(s *Session) { s.factory = f }
}

func WithStore(store Store) Option {
	return func(s *Session) { s.store = store }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(opts ...Option) *Session {
	s := &Session{
		config:  generation.DefaultConfig(),
		binding: Unbound{},
		factory: generation.NewEngine,
		store:   NewMemoryStore(),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "session")
	return s
}

// Init binds an engine for the current seed and config.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebind(ctx, "init", s.seed, s.config)
}

// Restore applies a persisted snapshot, if any, and binds it. It reports
// whether a snapshot was found.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	logger := s.logger.With("operation", "restore")

	snap, ok, err := s.store.Load(ctx)
	if err != nil {
		return false, errors.WrapExternal("failed to load session snapshot", err)
	}
	if !ok {
		logger.Info("No session snapshot found")
		return false, nil
	}
	if err := snap.Config.Validate(); err != nil {
		return false, errors.WrapValidation("persisted session config is invalid", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rebind(ctx, "restore", snap.Seed, snap.Config); err != nil {
		return false, err
	}

	logger.Info("Session restored", "seed", snap.Seed, "saved_at", snap.SavedAt)
	return true, nil
}

func (s *Session) SetSeed(ctx context.Context, seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebind(ctx, "set_seed", seed, s.config)
}

// LoadConfig replaces the whole generator config with the file at path. On
// any failure the previous config and engine stay in place.
func (s *Session) LoadConfig(ctx context.Context, path string) (generation.Config, error) {
	logger := s.logger.With("operation", "load_config", "path", path)

	cfg, err := generation.LoadFromFile(path)
	if err != nil {
		logger.Warn("Failed to load config, keeping current engine", "error", err)
		return generation.Config{}, errors.WrapValidation("failed to load config", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rebind(ctx, "load_config", s.seed, cfg); err != nil {
		return generation.Config{}, err
	}
	return cfg, nil
}

// ApplyConfig validates and binds a complete config.
func (s *Session) ApplyConfig(ctx context.Context, cfg generation.Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.WrapValidation("invalid config", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebind(ctx, "apply_config", s.seed, cfg)
}

func (s *Session) SetNearbyMaxRadius(ctx context.Context, radius float64) error {
	if !positiveFinite(radius) {
		return errors.Validationf("nearby max radius must be a positive finite number, got %v", radius)
	}
	return s.update(ctx, "set_nearby_max_radius", func(c *generation.Config) { c.NearbyMaxRadius = radius })
}

func (s *Session) SetStructureBlockSize(ctx context.Context, size float64) error {
	if !positiveFinite(size) {
		return errors.Validationf("structure block size must be a positive finite number, got %v", size)
	}
	return s.update(ctx, "set_structure_block_size", func(c *generation.Config) { c.StructureBlockSize = size })
}

func (s *Session) SetStructureSamplesPerBlock(ctx context.Context, samples uint64) error {
	if samples == 0 {
		return errors.Validation("structure samples per block must be at least 1")
	}
	return s.update(ctx, "set_structure_samples_per_block", func(c *generation.Config) { c.StructureSamplesPerBlock = samples })
}

// ConfigUpdate carries the runtime-tunable fields; nil fields are left alone.
type ConfigUpdate struct {
	NearbyMaxRadius          *float64 `json:"nearby_max_radius"`
	StructureBlockSize       *float64 `json:"structure_block_size"`
	StructureSamplesPerBlock *uint64  `json:"structure_samples_per_block"`
}

func (u ConfigUpdate) Empty() bool {
	return u.NearbyMaxRadius == nil && u.StructureBlockSize == nil && u.StructureSamplesPerBlock == nil
}

// Update applies all fields of u with a single rebind. Nothing changes if
// any field is invalid.
func (s *Session) Update(ctx context.Context, u ConfigUpdate) error {
	if u.Empty() {
		return errors.Validation("config update has no fields")
	}
	if u.NearbyMaxRadius != nil && !positiveFinite(*u.NearbyMaxRadius) {
		return errors.Validationf("nearby max radius must be a positive finite number, got %v", *u.NearbyMaxRadius)
	}
	if u.StructureBlockSize != nil && !positiveFinite(*u.StructureBlockSize) {
		return errors.Validationf("structure block size must be a positive finite number, got %v", *u.StructureBlockSize)
	}
	if u.StructureSamplesPerBlock != nil && *u.StructureSamplesPerBlock == 0 {
		return errors.Validation("structure samples per block must be at least 1")
	}

	return s.update(ctx, "update_config", func(c *generation.Config) {
		if u.NearbyMaxRadius != nil {
			c.NearbyMaxRadius = *u.NearbyMaxRadius
		}
		if u.StructureBlockSize != nil {
			c.StructureBlockSize = *u.StructureBlockSize
		}
		if u.StructureSamplesPerBlock != nil {
			c.StructureSamplesPerBlock = *u.StructureSamplesPerBlock
		}
	})
}

func (s *Session) update(ctx context.Context, operation string, mutate func(*generation.Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.config
	mutate(&cfg)
	if err := cfg.Validate(); err != nil {
		return errors.WrapValidation("invalid config", err)
	}
	return s.rebind(ctx, operation, s.seed, cfg)
}

// rebind builds a new engine, persists the snapshot and only then swaps the
// session state. Callers hold the write lock.
func (s *Session) rebind(ctx context.Context, operation string, seed int64, cfg generation.Config) error {
	logger := s.logger.With("operation", operation)

	engine, err := s.factory(uint64(seed), cfg)
	if err != nil {
		logger.Warn("Failed to build engine, keeping current binding", "seed", seed, "error", err)
		return errors.WrapValidation("failed to build engine", err)
	}

	boundAt := s.now()
	snap := Snapshot{Seed: seed, Config: cfg, SavedAt: boundAt}
	if err := s.store.Save(ctx, snap); err != nil {
		return errors.WrapExternal("failed to save session snapshot", err)
	}

	s.seed = seed
	s.config = cfg
	s.binding = Bound{Engine: engine, BoundAt: boundAt}

	logger.Info("Engine bound",
		"seed", seed,
		"nearby_max_radius", cfg.NearbyMaxRadius,
		"structure_block_size", cfg.StructureBlockSize,
		"structure_samples_per_block", cfg.StructureSamplesPerBlock,
	)
	return nil
}

func (s *Session) Seed() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seed
}

// Config returns a copy of the current config.
func (s *Session) Config() generation.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Session) NearbyMaxRadius() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.NearbyMaxRadius
}

func (s *Session) Binding() Binding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.binding
}

// Engine returns the bound engine. Callers keep using the returned engine
// for the whole query even if the session rebinds meanwhile.
func (s *Session) Engine() (generation.Engine, error) {
	s.mu.RLock()
	binding := s.binding
	s.mu.RUnlock()

	bound, ok := binding.(Bound)
	if !ok {
		s.logger.Warn("Galaxy engine is uninitialized")
		return nil, ErrEngineNotInitialized
	}
	return bound.Engine, nil
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := State{Seed: s.seed, Config: s.config}
	if bound, ok := s.binding.(Bound); ok {
		boundAt := bound.BoundAt
		state.Bound = true
		state.BoundAt = &boundAt
	}
	return state
}

// StoreHealth reports the snapshot store status for health checks.
func (s *Session) StoreHealth(ctx context.Context) (string, error) {
	return s.store.Name(), s.store.Ping(ctx)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
