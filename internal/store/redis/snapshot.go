package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/store"
)

const (
	// DefaultSnapshotTTL is the default TTL for persisted snapshots (48 hours)
	DefaultSnapshotTTL = 48 * time.Hour
)

// Store handles Redis persistence of snapshots for one host
type Store struct {
	client      *redis.Client
	host        string
	ttl         time.Duration
	historySize int64
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client, host string) *Store {
	return &Store{
		client:      client,
		host:        host,
		ttl:         DefaultSnapshotTTL,
		historySize: store.DefaultHistorySize,
	}
}

// Backend names the store in status output
func (s *Store) Backend() string { return "redis" }

// SaveSnapshot stores the snapshot and records its generation ID
func (s *Store) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, SnapshotKey(s.host), data, s.ttl)
	pipe.LPush(ctx, GenerationsKey(s.host), snap.ID)
	pipe.LTrim(ctx, GenerationsKey(s.host), 0, s.historySize-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot retrieves the persisted snapshot
func (s *Store) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	data, err := s.client.Get(ctx, SnapshotKey(s.host)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid persisted snapshot: %w", err)
	}

	return &snap, nil
}

// RecentGenerations returns the newest n generation IDs
func (s *Store) RecentGenerations(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	ids, err := s.client.LRange(ctx, GenerationsKey(s.host), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get generations: %w", err)
	}
	return ids, nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
