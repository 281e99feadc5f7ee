package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/store"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewStore(client, "blog.example.com")
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	snap := &domain.Snapshot{
		ID:          "gen-1",
		Host:        "blog.example.com",
		Result:      domain.Rendered(domain.Page{Title: "Blog - About Me", HTML: []byte("<html></html>"), ETag: `"abc"`}),
		GeneratedAt: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}

	if err := s.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	if ttl := mr.TTL(SnapshotKey("blog.example.com")); ttl != DefaultSnapshotTTL {
		t.Errorf("snapshot TTL = %v, want %v", ttl, DefaultSnapshotTTL)
	}

	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if got.ID != "gen-1" || got.Result.Kind != domain.ResultRendered {
		t.Errorf("LoadSnapshot() = %+v", got)
	}
	if string(got.Result.Page.HTML) != "<html></html>" {
		t.Errorf("page HTML = %q", got.Result.Page.HTML)
	}
	if !got.GeneratedAt.Equal(snap.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, snap.GeneratedAt)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.LoadSnapshot(context.Background())
	if !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Errorf("LoadSnapshot() error = %v, want ErrSnapshotNotFound", err)
	}
}

func TestLoadSnapshotCorrupt(t *testing.T) {
	s, mr := newTestStore(t)
	if err := mr.Set(SnapshotKey("blog.example.com"), "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := s.LoadSnapshot(context.Background()); err == nil {
		t.Error("LoadSnapshot() with corrupt payload should return error")
	}
}

func TestRecentGenerationsTrimmed(t *testing.T) {
	s, _ := newTestStore(t)
	s.historySize = 3
	ctx := context.Background()

	for _, id := range []string{"g1", "g2", "g3", "g4"} {
		if err := s.SaveSnapshot(ctx, &domain.Snapshot{ID: id, Result: domain.NotFound()}); err != nil {
			t.Fatalf("SaveSnapshot(%s) error = %v", id, err)
		}
	}

	ids, err := s.RecentGenerations(ctx, 10)
	if err != nil {
		t.Fatalf("RecentGenerations() error = %v", err)
	}
	want := []string{"g4", "g3", "g2"}
	if len(ids) != len(want) {
		t.Fatalf("RecentGenerations() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("RecentGenerations()[%d] = %v, want %v", i, ids[i], want[i])
		}
	}

	if ids, _ := s.RecentGenerations(ctx, 0); len(ids) != 0 {
		t.Errorf("RecentGenerations(0) = %v, want empty", ids)
	}
}

func TestStoreIsolatedPerHost(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	a := NewStore(client, "a.example.com")
	b := NewStore(client, "b.example.com")
	ctx := context.Background()

	if err := a.SaveSnapshot(ctx, &domain.Snapshot{ID: "a1", Result: domain.NotFound()}); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if _, err := b.LoadSnapshot(ctx); !errors.Is(err, store.ErrSnapshotNotFound) {
		t.Errorf("other host should not see snapshot, err = %v", err)
	}
	if err := a.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

var _ store.SnapshotStore = (*Store)(nil)
