package deps

import (
	"time"

	"github.com/MrSnakeDoc/aboutme/internal/index"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
	"github.com/MrSnakeDoc/aboutme/internal/store"
)

// Revalidator schedules a background regeneration when the page is stale.
type Revalidator interface {
	Revalidate()
}

type Deps struct {
	Logger             logger.Logger
	StartTime          time.Time
	Version            string
	Commit             string
	BuildDate          string
	GoVersion          string
	TimeNow            func() time.Time    // for testing, defaults to time.Now
	AllowedHosts       []string            // Host headers allowed to trigger a reload
	AllowedCIDRS       []string            // IPs allowed to access healthz/readyz/infra/reload
	TrustProxy         bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	MemoryIndex        *index.MemoryIndex  // Snapshot currently served
	Store              store.SnapshotStore // Snapshot persistence, nil when disabled
	Revalidator        Revalidator         // Stale-while-revalidate hook, nil disables it
	RevalidateInterval time.Duration       // Age after which a served snapshot is stale
	ReloadTrigger      chan struct{}       // Channel to trigger manual regeneration
	AssetsDir          string              // Directory served under /assets
	RateBurst          int                 // Per-IP burst on page routes
	RatePerIPMin       int                 // Per-IP refill per minute on page routes
}

// Now returns the current time from TimeNow, or time.Now when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
