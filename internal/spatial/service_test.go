package spatial_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/generation"
	"galaxy-server/internal/session"
	"galaxy-server/internal/spatial"
	"galaxy-server/internal/stellar"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeEngine struct {
	cfg       generation.Config
	structure []stellar.Star
	nearby    []stellar.Star
	estimate  float64

	gotRadius   float64
	gotMaxStars int
}

func (f *fakeEngine) Seed() uint64              { return 1 }
func (f *fakeEngine) Config() generation.Config { return f.cfg }
func (f *fakeEngine) GalaxyRadius() float64     { return f.cfg.GalaxyRadius }

func (f *fakeEngine) GetGalacticStructure(int) []stellar.Star {
	return slices.Clone(f.structure)
}

func (f *fakeEngine) EstimateTotalStars(float64) float64 { return f.estimate }

func (f *fakeEngine) GetNearbyStars(_ stellar.Vec3, radius float64, maxStars int) []stellar.Star {
	f.gotRadius = radius
	f.gotMaxStars = maxStars
	return slices.Clone(f.nearby)
}

func (f *fakeEngine) GetStarSystem(stellar.SystemQuery) (*stellar.StarSystem, error) {
	return nil, generation.ErrStarNotFound
}

type fakeSource struct {
	engine generation.Engine
	err    error
}

func (s fakeSource) Engine() (generation.Engine, error) {
	return s.engine, s.err
}

func star(id uint64, x, mass float64, t stellar.StarType) stellar.Star {
	return stellar.Star{ID: id, Position: stellar.Vec3{X: x}, Mass: mass, Type: t}
}

func TestGetStructureOrdersAndCaps(t *testing.T) {
	engine := &fakeEngine{
		cfg: generation.DefaultConfig(),
		structure: []stellar.Star{
			star(5, 0, 0.2, stellar.StarTypeM),
			star(4, 0, 10, stellar.StarTypeB),
			star(3, 0, 1, stellar.StarTypeG),
			star(2, 0, 1, stellar.StarTypeG),
			star(1, 0, 0.9, stellar.StarTypeWhiteDwarf),
		},
		estimate: 1234.4,
	}
	svc := spatial.NewService(fakeSource{engine: engine}, discard)

	result, err := svc.GetStructure(3)
	require.NoError(t, err)

	ids := make([]uint64, len(result.Stars))
	for i, s := range result.Stars {
		ids[i] = s.ID
	}
	assert.Equal(t, []uint64{4, 2, 3}, ids)
	assert.Equal(t, int64(1234), result.EstimatedTotalStars)
	assert.Empty(t, result.Diagnostic)
}

func TestGetStructureZeroStillEstimates(t *testing.T) {
	engine := &fakeEngine{cfg: generation.DefaultConfig(), estimate: 99.6}
	svc := spatial.NewService(fakeSource{engine: engine}, discard)

	for _, n := range []int{0, -5} {
		result, err := svc.GetStructure(n)
		require.NoError(t, err)
		assert.NotNil(t, result.Stars)
		assert.Empty(t, result.Stars)
		assert.Equal(t, int64(100), result.EstimatedTotalStars)
		assert.Zero(t, result.MaxStars)
	}

	engine.estimate = -3
	result, err := svc.GetStructure(1)
	require.NoError(t, err)
	assert.Zero(t, result.EstimatedTotalStars)

	engine.estimate = math.NaN()
	result, err = svc.GetStructure(1)
	require.NoError(t, err)
	assert.Zero(t, result.EstimatedTotalStars)
}

func TestGetNearbyStarsClampsFiltersAndSorts(t *testing.T) {
	engine := &fakeEngine{
		cfg: generation.DefaultConfig(),
		nearby: []stellar.Star{
			star(7, 20, 1, stellar.StarTypeG), // outside the clamped radius
			star(6, 3, 1, stellar.StarTypeG),
			star(2, -3, 1, stellar.StarTypeK),
			star(9, 1, 1, stellar.StarTypeM),
		},
	}
	svc := spatial.NewService(fakeSource{engine: engine}, discard)

	result, err := svc.GetNearbyStars(stellar.Vec3{}, 50, 10)
	require.NoError(t, err)

	assert.Equal(t, 16.0, engine.gotRadius)
	assert.Equal(t, 10, engine.gotMaxStars)
	assert.Equal(t, spatial.NearbyQuery{
		RequestedRadius:   50,
		EffectiveRadius:   16,
		RadiusClamped:     true,
		RequestedMaxStars: 10,
		EffectiveMaxStars: 10,
	}, result.Query)

	ids := make([]uint64, len(result.Stars))
	for i, s := range result.Stars {
		ids[i] = s.ID
	}
	assert.Equal(t, []uint64{9, 2, 6}, ids)

	result, err = svc.GetNearbyStars(stellar.Vec3{}, 50, 2)
	require.NoError(t, err)
	assert.Len(t, result.Stars, 2)
}

func TestGetNearbyStarsDegenerateInputs(t *testing.T) {
	engine := &fakeEngine{
		cfg:    generation.DefaultConfig(),
		nearby: []stellar.Star{star(1, 0, 1, stellar.StarTypeG), star(2, 1, 1, stellar.StarTypeG)},
	}
	svc := spatial.NewService(fakeSource{engine: engine}, discard)

	for _, radius := range []float64{-4, math.NaN()} {
		result, err := svc.GetNearbyStars(stellar.Vec3{}, radius, 10)
		require.NoError(t, err)
		assert.Zero(t, result.Query.EffectiveRadius)
		assert.False(t, result.Query.RadiusClamped)
		require.Len(t, result.Stars, 1, "only the star exactly at the center is within radius 0")
		assert.Equal(t, uint64(1), result.Stars[0].ID)
	}

	result, err := svc.GetNearbyStars(stellar.Vec3{}, 5, -1)
	require.NoError(t, err)
	assert.NotNil(t, result.Stars)
	assert.Empty(t, result.Stars)
	assert.Zero(t, result.Query.EffectiveMaxStars)
}

func TestUnboundReturnsDiagnostic(t *testing.T) {
	svc := spatial.NewService(session.New(session.WithLogger(discard)), discard)

	structure, err := svc.GetStructure(10)
	assert.ErrorIs(t, err, session.ErrEngineNotInitialized)
	assert.NotNil(t, structure.Stars)
	assert.Empty(t, structure.Stars)
	assert.Equal(t, "engine not initialized", structure.Diagnostic)

	nearby, err := svc.GetNearbyStars(stellar.Vec3{}, 10, 10)
	assert.ErrorIs(t, err, session.ErrEngineNotInitialized)
	assert.NotNil(t, nearby.Stars)
	assert.Empty(t, nearby.Stars)
	assert.Equal(t, "engine not initialized", nearby.Diagnostic)
}

func TestNearbyRadiusBeyondMaximumMatchesMaximum(t *testing.T) {
	ctx := context.Background()
	s := session.New(session.WithLogger(discard))
	require.NoError(t, s.SetSeed(ctx, 42))
	svc := spatial.NewService(s, discard)

	wide, err := svc.GetNearbyStars(stellar.Vec3{}, 50, spatial.DefaultNearbyMaxStars)
	require.NoError(t, err)
	exact, err := svc.GetNearbyStars(stellar.Vec3{}, 16, spatial.DefaultNearbyMaxStars)
	require.NoError(t, err)

	assert.Equal(t, exact.Stars, wide.Stars)
	assert.NotEmpty(t, wide.Stars)
	for _, st := range wide.Stars {
		assert.LessOrEqual(t, st.Position.Length(), 16.0)
	}
}
