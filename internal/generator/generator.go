package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
)

// ErrMissingHost is returned when no publication host is configured.
var ErrMissingHost = errors.New("publication host is not configured")

// PublicationFetcher loads a publication by host.
// A nil publication with a nil error means the platform has none.
type PublicationFetcher interface {
	FetchPublication(ctx context.Context, host string) (*domain.Publication, error)
}

// PageRenderer turns a publication and the static profile into a page.
type PageRenderer interface {
	Render(pub domain.Publication, profile domain.Profile) (domain.Page, error)
}

// Generator runs one fetch-then-render cycle.
type Generator struct {
	fetcher  PublicationFetcher
	renderer PageRenderer
	profile  domain.Profile
	host     string
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
}

// New creates a generator for the publication served at host.
func New(fetcher PublicationFetcher, renderer PageRenderer, profile domain.Profile, host string, log logger.Logger) *Generator {
	return &Generator{
		fetcher:  fetcher,
		renderer: renderer,
		profile:  profile,
		host:     host,
		logger:   log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Host returns the configured publication host.
func (g *Generator) Host() string { return g.host }

// Generate fetches the publication and renders the page.
//
// An absent publication yields a NotFound snapshot. Any other failure,
// including missing configuration, is returned as an error and no snapshot
// is produced.
func (g *Generator) Generate(ctx context.Context) (*domain.Snapshot, error) {
	if g.host == "" {
		return nil, ErrMissingHost
	}

	id := g.newID()
	log := g.logger.With(logger.String("generation_id", id), logger.String("host", g.host))
	start := g.now()

	pub, err := g.fetcher.FetchPublication(ctx, g.host)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch publication: %w", err)
	}

	snap := &domain.Snapshot{
		ID:          id,
		Host:        g.host,
		GeneratedAt: start,
	}

	if pub == nil {
		log.Warn("publication not found, page will not be served")
		snap.Result = domain.NotFound()
		return snap, nil
	}

	page, err := g.renderer.Render(*pub, g.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	snap.Result = domain.Rendered(page)

	log.Info("page generated",
		logger.String("title", page.Title),
		logger.Int("bytes", len(page.HTML)),
		logger.Duration("elapsed", g.now().Sub(start)))

	return snap, nil
}
