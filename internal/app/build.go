package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrSnakeDoc/aboutme/internal/config"
	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
	"github.com/MrSnakeDoc/aboutme/internal/scheduler"
)

// Build runs one generation and writes the page to out.
//
// A NotFound result removes any previous output and is not an error.
func Build(ctx context.Context, cfg *config.Config, loggerClient logger.Logger, out string) (domain.ResultKind, error) {
	gen, err := NewGenerator(cfg, loggerClient)
	if err != nil {
		return 0, err
	}
	return build(ctx, gen, loggerClient, out)
}

func build(ctx context.Context, gen scheduler.Generator, loggerClient logger.Logger, out string) (domain.ResultKind, error) {
	snap, err := gen.Generate(ctx)
	if err != nil {
		return 0, fmt.Errorf("generation failed: %w", err)
	}

	if err := WriteSnapshot(snap, out); err != nil {
		return 0, err
	}

	switch snap.Result.Kind {
	case domain.ResultRendered:
		loggerClient.Info("page written",
			logger.String("path", out),
			logger.Int("bytes", len(snap.Result.Page.HTML)),
			logger.String("generation_id", snap.ID))
	case domain.ResultNotFound:
		loggerClient.Warn("publication not found, no page written",
			logger.String("host", snap.Host),
			logger.String("path", out))
	}
	return snap.Result.Kind, nil
}

// WriteSnapshot writes a rendered page to path atomically, or removes path
// for a NotFound snapshot.
func WriteSnapshot(snap *domain.Snapshot, path string) error {
	switch snap.Result.Kind {
	case domain.ResultNotFound:
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove stale page: %w", err)
		}
		return nil
	case domain.ResultRendered:
		return writeFileAtomic(path, snap.Result.Page.HTML)
	default:
		return fmt.Errorf("unknown result kind %q", snap.Result.Kind)
	}
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".aboutme-*.html")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	return nil
}
