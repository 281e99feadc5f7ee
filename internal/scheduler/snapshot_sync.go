package scheduler

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/aboutme/internal/index"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
	"github.com/MrSnakeDoc/aboutme/internal/store"
)

// SnapshotSyncer restores the persisted snapshot into memory on startup
type SnapshotSyncer struct {
	store  store.SnapshotStore
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewSnapshotSyncer creates a new syncer
func NewSnapshotSyncer(
	st store.SnapshotStore,
	idx *index.MemoryIndex,
	log logger.Logger,
) *SnapshotSyncer {
	return &SnapshotSyncer{
		store:  st,
		index:  idx,
		logger: log,
	}
}

// Sync loads the persisted snapshot and installs it in the memory index.
// A missing snapshot is not an error.
func (ss *SnapshotSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("restoring snapshot from store",
		logger.String("backend", ss.store.Backend()))

	snap, err := ss.store.LoadSnapshot(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			ss.logger.Info("no snapshot found in store")
			return nil
		}
		return err
	}

	ss.index.Restore(snap)

	ss.logger.Info("restored snapshot from store",
		logger.String("generation_id", snap.ID),
		logger.String("result", snap.Result.Kind.String()),
		logger.Time("generated_at", snap.GeneratedAt))

	return nil
}
