// Package store defines persistence for generated snapshots so a restart
// keeps serving the previous page while the first regeneration runs.
package store

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
)

// ErrSnapshotNotFound is returned when nothing was persisted for the host.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// DefaultHistorySize is how many generation IDs are kept per host.
const DefaultHistorySize = 20

// SnapshotStore persists the latest snapshot of one publication host.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, s *domain.Snapshot) error
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
	// RecentGenerations returns up to n generation IDs, newest first.
	RecentGenerations(ctx context.Context, n int) ([]string, error)
	Ping(ctx context.Context) error
	Backend() string
	Close() error
}
