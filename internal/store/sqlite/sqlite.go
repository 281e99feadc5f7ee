package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/store"
	"github.com/MrSnakeDoc/aboutme/internal/utils"
)

// Store persists snapshots in a local SQLite database.
type Store struct {
	db          *sql.DB
	host        string
	historySize int
}

// Open opens (or creates) the database at path, ensures the data directory
// exists, and runs schema migrations.
func Open(path, host string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure sqlite: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	s := &Store{db: db, host: host, historySize: store.DefaultHistorySize}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
    host TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    kind TEXT NOT NULL,
    generated_at TEXT NOT NULL,
    payload BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS generations (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL,
    host TEXT NOT NULL,
    kind TEXT NOT NULL,
    generated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS generations_host ON generations (host, seq);
`)
	if err != nil {
		return fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	return nil
}

// Backend names the store in status output.
func (s *Store) Backend() string { return "sqlite" }

// SaveSnapshot upserts the snapshot and appends to the generation history.
func (s *Store) SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	kind := snap.Result.Kind.String()
	at := snap.GeneratedAt.UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO snapshots (host, id, kind, generated_at, payload) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(host) DO UPDATE SET id = excluded.id, kind = excluded.kind,
    generated_at = excluded.generated_at, payload = excluded.payload`,
		s.host, snap.ID, kind, at, payload); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO generations (id, host, kind, generated_at) VALUES (?, ?, ?, ?)`,
		snap.ID, s.host, kind, at); err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
DELETE FROM generations WHERE host = ? AND seq NOT IN (
    SELECT seq FROM generations WHERE host = ? ORDER BY seq DESC LIMIT ?)`,
		s.host, s.host, s.historySize); err != nil {
		return fmt.Errorf("failed to trim generations: %w", err)
	}

	return tx.Commit()
}

// LoadSnapshot returns the persisted snapshot for the host.
func (s *Store) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE host = ?`, s.host).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid persisted snapshot: %w", err)
	}
	return &snap, nil
}

// RecentGenerations returns up to n generation IDs, newest first.
func (s *Store) RecentGenerations(ctx context.Context, n int) ([]string, error) {
	ids := []string{}
	if n <= 0 {
		return ids, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM generations WHERE host = ? ORDER BY seq DESC LIMIT ?`, s.host, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer utils.Close(rows)

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Ping checks the database handle.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
