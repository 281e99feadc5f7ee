package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/index"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
	"github.com/MrSnakeDoc/aboutme/internal/store"
)

// ErrTooSoon is returned when a regeneration is requested before the
// minimum interval has elapsed since the previous attempt.
var ErrTooSoon = errors.New("regeneration requested before minimum interval")

const regenerateKey = "regenerate"

// Generator produces a fresh snapshot.
type Generator interface {
	Generate(ctx context.Context) (*domain.Snapshot, error)
}

// PageRegenerator keeps the served snapshot fresh.
//
// Regenerations come from three places: a periodic ticker, a manual trigger
// channel, and stale page requests (Revalidate). All of them are coalesced
// and none runs within minInterval of the previous attempt.
type PageRegenerator struct {
	generator     Generator
	store         store.SnapshotStore // optional
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	minInterval   time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
	group         singleflight.Group
	wg            sync.WaitGroup
	now           func() time.Time

	mu          sync.Mutex
	baseCtx     context.Context
	lastAttempt time.Time
	stopped     bool
}

// NewPageRegenerator creates a new regenerator. interval is the background
// refresh period and is raised to minInterval when smaller; zero or less
// disables periodic refresh.
func NewPageRegenerator(
	gen Generator,
	st store.SnapshotStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	minInterval time.Duration,
	manualTrigger chan struct{},
) *PageRegenerator {
	if interval > 0 && interval < minInterval {
		interval = minInterval
	}
	return &PageRegenerator{
		generator:     gen,
		store:         st,
		index:         idx,
		logger:        log,
		interval:      interval,
		minInterval:   minInterval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		now:           time.Now,
		baseCtx:       context.Background(),
	}
}

// Start generates the page once and begins periodic regeneration.
//
// A failed first generation is fatal unless a previous snapshot (restored
// from the store) can keep serving.
func (pr *PageRegenerator) Start(ctx context.Context) error {
	pr.mu.Lock()
	pr.baseCtx = ctx
	pr.mu.Unlock()

	if err := pr.Reload(ctx); err != nil {
		if !pr.index.HasSnapshot() {
			return fmt.Errorf("initial generation failed: %w", err)
		}
		pr.logger.Warn("initial generation failed, serving persisted snapshot",
			logger.Error(err))
	}

	// Manual triggers are served even when periodic refresh is disabled
	var tick <-chan time.Time
	var ticker *time.Ticker
	if pr.interval > 0 {
		ticker = time.NewTicker(pr.interval)
		tick = ticker.C
	}

	if !pr.spawn(func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				pr.runDue(ctx, "ticker")
			case <-pr.manualTrigger:
				pr.logger.Info("manual regeneration triggered")
				pr.runDue(ctx, "manual")
			case <-pr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}) && ticker != nil {
		ticker.Stop()
	}

	return nil
}

// Stop stops background work and waits for in-flight regenerations.
func (pr *PageRegenerator) Stop() {
	pr.mu.Lock()
	if !pr.stopped {
		pr.stopped = true
		close(pr.stopCh)
	}
	pr.mu.Unlock()

	pr.wg.Wait()
}

// spawn runs fn in a tracked goroutine unless Stop was called. The stop
// check and wg.Add happen under mu so they never race with Stop's Wait.
func (pr *PageRegenerator) spawn(fn func()) bool {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	if pr.stopped {
		return false
	}
	pr.wg.Add(1)
	go func() {
		defer pr.wg.Done()
		fn()
	}()
	return true
}

// Reload regenerates immediately, ignoring the minimum interval.
func (pr *PageRegenerator) Reload(ctx context.Context) error {
	_, err, _ := pr.group.Do(regenerateKey, func() (interface{}, error) {
		return nil, pr.regenerate(ctx)
	})
	return err
}

// ReloadIfDue regenerates unless the previous attempt is younger than the
// minimum interval, in which case it returns ErrTooSoon.
func (pr *PageRegenerator) ReloadIfDue(ctx context.Context) error {
	_, err, _ := pr.group.Do(regenerateKey, func() (interface{}, error) {
		if !pr.due() {
			return nil, ErrTooSoon
		}
		return nil, pr.regenerate(ctx)
	})
	return err
}

// Revalidate schedules a background regeneration when the served snapshot
// is stale. It never blocks the caller and does nothing after Stop.
func (pr *PageRegenerator) Revalidate() {
	if !pr.due() {
		return
	}

	pr.mu.Lock()
	ctx := pr.baseCtx
	pr.mu.Unlock()

	pr.spawn(func() { pr.runDue(ctx, "revalidate") })
}

func (pr *PageRegenerator) runDue(ctx context.Context, reason string) {
	err := pr.ReloadIfDue(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrTooSoon):
		pr.logger.Debug("regeneration skipped, minimum interval not elapsed",
			logger.String("reason", reason))
	default:
		pr.logger.Error("failed to regenerate page",
			logger.String("reason", reason),
			logger.Error(err))
	}
}

func (pr *PageRegenerator) due() bool {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	if pr.lastAttempt.IsZero() {
		return true
	}
	return pr.now().Sub(pr.lastAttempt) >= pr.minInterval
}

// regenerate runs one generation and publishes the result.
func (pr *PageRegenerator) regenerate(ctx context.Context) error {
	pr.mu.Lock()
	pr.lastAttempt = pr.now()
	pr.mu.Unlock()

	pr.logger.Info("regenerating about page")

	snap, err := pr.generator.Generate(ctx)
	if err != nil {
		pr.index.RecordFailure(err)
		return err
	}

	pr.index.Update(snap)

	// Store is best effort; the memory index is what gets served
	if pr.store != nil {
		if err := pr.store.SaveSnapshot(ctx, snap); err != nil {
			pr.logger.Warn("failed to persist snapshot",
				logger.String("backend", pr.store.Backend()),
				logger.Error(err))
		} else {
			pr.logger.Debug("snapshot persisted",
				logger.String("backend", pr.store.Backend()),
				logger.String("generation_id", snap.ID))
		}
	}

	pr.logger.Info("about page regenerated",
		logger.String("generation_id", snap.ID),
		logger.String("result", snap.Result.Kind.String()))

	return nil
}
