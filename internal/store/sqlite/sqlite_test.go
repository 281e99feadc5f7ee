package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/store"
)

func setupTestStore(t *testing.T, host string) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "aboutme.db"), host)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	s := setupTestStore(t, "blog.example.com")
	ctx := context.Background()

	first := &domain.Snapshot{
		ID:          "gen-1",
		Host:        "blog.example.com",
		Result:      domain.Rendered(domain.Page{Title: "Blog - About Me", HTML: []byte("<p>v1</p>")}),
		GeneratedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
	second := &domain.Snapshot{
		ID:          "gen-2",
		Host:        "blog.example.com",
		Result:      domain.NotFound(),
		GeneratedAt: first.GeneratedAt.Add(time.Minute),
	}

	for _, snap := range []*domain.Snapshot{first, second} {
		if err := s.SaveSnapshot(ctx, snap); err != nil {
			t.Fatalf("SaveSnapshot(%s) error = %v", snap.ID, err)
		}
	}

	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if got.ID != "gen-2" {
		t.Errorf("LoadSnapshot().ID = %q, want gen-2", got.ID)
	}
	if got.Result.Kind != domain.ResultNotFound || got.Result.Page != nil {
		t.Errorf("LoadSnapshot().Result = %+v, want NotFound", got.Result)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	s := setupTestStore(t, "blog.example.com")

	_, err := s.LoadSnapshot(context.Background())
	if !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Errorf("LoadSnapshot() error = %v, want ErrSnapshotNotFound", err)
	}
}

func TestRecentGenerations(t *testing.T) {
	s := setupTestStore(t, "blog.example.com")
	s.historySize = 2
	ctx := context.Background()

	for _, id := range []string{"g1", "g2", "g3"} {
		if err := s.SaveSnapshot(ctx, &domain.Snapshot{ID: id, Result: domain.NotFound()}); err != nil {
			t.Fatalf("SaveSnapshot(%s) error = %v", id, err)
		}
	}

	ids, err := s.RecentGenerations(ctx, 5)
	if err != nil {
		t.Fatalf("RecentGenerations() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "g3" || ids[1] != "g2" {
		t.Errorf("RecentGenerations() = %v, want [g3 g2]", ids)
	}
}

func TestReopenKeepsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aboutme.db")
	ctx := context.Background()

	s, err := Open(path, "blog.example.com")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SaveSnapshot(ctx, &domain.Snapshot{ID: "persisted", Result: domain.NotFound()}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path, "blog.example.com")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if got.ID != "persisted" {
		t.Errorf("LoadSnapshot().ID = %q, want persisted", got.ID)
	}
	if err := reopened.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

var _ store.SnapshotStore = (*Store)(nil)
