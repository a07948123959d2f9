package session

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"galaxy-server/internal/generation"
	sharedredis "galaxy-server/internal/shared/redis"
)

// Snapshot is what survives a restart: enough to rebuild the same galaxy.
type Snapshot struct {
	Seed    int64             `json:"seed"`
	Config  generation.Config `json:"config"`
	SavedAt time.Time         `json:"saved_at"`
}

type Store interface {
	Name() string
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, snap Snapshot) error
	Ping(ctx context.Context) error
}

type MemoryStore struct {
	mu   sync.Mutex
	snap *Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Name() string {
	return "memory"
}

func (m *MemoryStore) Load(context.Context) (Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return Snapshot{}, false, nil
	}
	return *m.snap, true, nil
}

func (m *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = &snap
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// RedisStore keeps the snapshot as a JSON string under a single key.
type RedisStore struct {
	client *sharedredis.Client
	key    string
}

func NewRedisStore(client *sharedredis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Name() string {
	return "redis"
}

func (s *RedisStore) Load(ctx context.Context) (Snapshot, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if goerrors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to decode %s: %w", s.key, err)
	}
	return snap, true, nil
}

func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
