package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/index"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
)

func TestSnapshotSyncer_Sync(t *testing.T) {
	persisted := &domain.Snapshot{ID: "persisted", Host: "blog.example.com", Result: domain.NotFound()}

	tests := []struct {
		name      string
		store     *fakeStore
		wantErr   bool
		wantReady bool
	}{
		{name: "restores persisted snapshot", store: &fakeStore{loaded: persisted}, wantReady: true},
		{name: "empty store is not an error", store: &fakeStore{}, wantReady: false},
		{name: "load failure is returned", store: &fakeStore{loadErr: errors.New("conn refused")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := index.NewMemoryIndex()
			ss := NewSnapshotSyncer(tt.store, idx, logger.Nop())

			err := ss.Sync(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Sync() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := idx.HasSnapshot(); got != tt.wantReady {
				t.Errorf("HasSnapshot() = %v, want %v", got, tt.wantReady)
			}
		})
	}
}
