package session_test

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/generation"
	"galaxy-server/internal/session"
	"galaxy-server/internal/shared/errors"
)

func newSession(t *testing.T, opts ...session.Option) *session.Session {
	t.Helper()
	opts = append([]session.Option{session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return session.New(opts...)
}

func boundEngine(t *testing.T, s *session.Session) generation.Engine {
	t.Helper()
	engine, err := s.Engine()
	require.NoError(t, err)
	return engine
}

type failingStore struct {
	session.MemoryStore
	fail bool
}

func (f *failingStore) Save(ctx context.Context, snap session.Snapshot) error {
	if f.fail {
		return stderrors.New("connection refused")
	}
	return f.MemoryStore.Save(ctx, snap)
}

func TestNewSessionIsUnbound(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, int64(0), s.Seed())
	assert.Equal(t, 16.0, s.NearbyMaxRadius())
	assert.IsType(t, session.Unbound{}, s.Binding())
	assert.False(t, s.State().Bound)

	_, err := s.Engine()
	assert.ErrorIs(t, err, session.ErrEngineNotInitialized)
	assert.Equal(t, errors.ErrorTypeUnavailable, errors.GetType(err))
}

func TestInitBinds(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Init(context.Background()))

	engine := boundEngine(t, s)
	assert.Equal(t, uint64(0), engine.Seed())
	assert.Equal(t, generation.DefaultConfig(), engine.Config())

	state := s.State()
	assert.True(t, state.Bound)
	assert.NotNil(t, state.BoundAt)
}

func TestSetSeedRebinds(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	require.NoError(t, s.Init(ctx))
	before := boundEngine(t, s)

	require.NoError(t, s.SetSeed(ctx, 42))
	after := boundEngine(t, s)

	assert.Equal(t, int64(42), s.Seed())
	assert.Equal(t, uint64(42), after.Seed())
	assert.Equal(t, uint64(0), before.Seed(), "old engine is left untouched")

	require.NoError(t, s.SetSeed(ctx, -1))
	assert.Equal(t, uint64(math.MaxUint64), boundEngine(t, s).Seed())
}

func TestSetterBindsUnboundSession(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.SetNearbyMaxRadius(context.Background(), 24))

	assert.Equal(t, 24.0, boundEngine(t, s).Config().NearbyMaxRadius)
}

func TestSettersBuildNewEngine(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	require.NoError(t, s.Init(ctx))
	before := boundEngine(t, s)

	require.NoError(t, s.SetNearbyMaxRadius(ctx, 30))
	require.NoError(t, s.SetStructureBlockSize(ctx, 2000))
	require.NoError(t, s.SetStructureSamplesPerBlock(ctx, 3))

	cfg := boundEngine(t, s).Config()
	assert.Equal(t, 30.0, cfg.NearbyMaxRadius)
	assert.Equal(t, 2000.0, cfg.StructureBlockSize)
	assert.Equal(t, uint64(3), cfg.StructureSamplesPerBlock)
	assert.Equal(t, 30.0, s.NearbyMaxRadius())

	assert.Equal(t, generation.DefaultConfig(), before.Config())
}

func TestInvalidSetterValuesLeaveSessionUntouched(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	require.NoError(t, s.Init(ctx))
	before := boundEngine(t, s)

	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		err := s.SetNearbyMaxRadius(ctx, v)
		assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err), "radius %v", v)

		err = s.SetStructureBlockSize(ctx, v)
		assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err), "block size %v", v)
	}
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(s.SetStructureSamplesPerBlock(ctx, 0)))

	// block smaller than a cell passes the setter check but fails config validation
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(s.SetStructureBlockSize(ctx, 1)))

	// values that would make a single query walk too much of the galaxy
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(s.SetNearbyMaxRadius(ctx, 400)))
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(s.SetStructureBlockSize(ctx, 10)))
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(s.SetStructureSamplesPerBlock(ctx, 1000)))
	assert.Equal(t, 16.0, s.NearbyMaxRadius())

	assert.Same(t, before, boundEngine(t, s))
	assert.Equal(t, generation.DefaultConfig(), s.Config())
}

func TestUpdateAppliesAllFieldsAtOnce(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	require.NoError(t, s.Init(ctx))

	radius, samples := 20.0, uint64(4)
	require.NoError(t, s.Update(ctx, session.ConfigUpdate{NearbyMaxRadius: &radius, StructureSamplesPerBlock: &samples}))
	assert.Equal(t, 20.0, s.Config().NearbyMaxRadius)
	assert.Equal(t, uint64(4), s.Config().StructureSamplesPerBlock)

	bad := -3.0
	err := s.Update(ctx, session.ConfigUpdate{NearbyMaxRadius: &radius, StructureBlockSize: &bad})
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	assert.Equal(t, generation.DefaultConfig().StructureBlockSize, s.Config().StructureBlockSize)

	assert.Error(t, s.Update(ctx, session.ConfigUpdate{}))
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	good := filepath.Join(dir, "galaxy.yaml")
	require.NoError(t, os.WriteFile(good, []byte("nearby_max_radius: 12\n"), 0o600))
	bad := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(bad, []byte("nearby_max_radius = ["), 0o600))

	s := newSession(t)
	require.NoError(t, s.SetSeed(ctx, 7))
	before := boundEngine(t, s)

	_, err := s.LoadConfig(ctx, bad)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	_, err = s.LoadConfig(ctx, filepath.Join(dir, "missing.toml"))
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	assert.Same(t, before, boundEngine(t, s))

	cfg, err := s.LoadConfig(ctx, good)
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.NearbyMaxRadius)
	assert.Equal(t, 12.0, boundEngine(t, s).Config().NearbyMaxRadius)
	assert.Equal(t, uint64(7), boundEngine(t, s).Seed())
}

func TestStoreFailureKeepsBinding(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	s := newSession(t, session.WithStore(store))
	require.NoError(t, s.Init(ctx))
	before := boundEngine(t, s)

	store.fail = true
	err := s.SetSeed(ctx, 99)
	assert.Equal(t, errors.ErrorTypeExternal, errors.GetType(err))
	assert.Equal(t, int64(0), s.Seed())
	assert.Same(t, before, boundEngine(t, s))
}

func TestFactoryFailureKeepsBinding(t *testing.T) {
	ctx := context.Background()
	calls := 0
	factory := func(seed uint64, cfg generation.Config) (generation.Engine, error) {
		calls++
		if calls > 1 {
			return nil, stderrors.New("boom")
		}
		return generation.NewEngine(seed, cfg)
	}

	s := newSession(t, session.WithFactory(factory))
	require.NoError(t, s.Init(ctx))
	assert.Error(t, s.SetSeed(ctx, 5))
	assert.Equal(t, int64(0), s.Seed())
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	clock := func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	first := newSession(t, session.WithStore(store), session.WithClock(clock))
	restored, err := first.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, restored)

	require.NoError(t, first.SetSeed(ctx, 1234))
	require.NoError(t, first.SetNearbyMaxRadius(ctx, 8))

	second := newSession(t, session.WithStore(store))
	restored, err = second.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, int64(1234), second.Seed())
	assert.Equal(t, 8.0, boundEngine(t, second).Config().NearbyMaxRadius)
}

func TestConcurrentQueriesDuringRebind(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	require.NoError(t, s.Init(ctx))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				engine, err := s.Engine()
				if assert.NoError(t, err) {
					_ = engine.GalaxyRadius()
				}
				_ = s.State()
			}
		}()
		if i%2 == 0 {
			require.NoError(t, s.SetSeed(ctx, int64(i)))
		}
	}
	wg.Wait()
}
