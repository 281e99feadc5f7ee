package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/aboutme/internal/httpserver/deps"
	"github.com/MrSnakeDoc/aboutme/internal/store"
)

const infraTimeFormat = time.RFC3339

type componentStatus struct {
	OK           bool     `json:"ok"`
	Result       string   `json:"result,omitempty"`
	GenerationID string   `json:"generation_id,omitempty"`
	GeneratedAt  string   `json:"generated_at,omitempty"`
	LastReload   string   `json:"last_reload,omitempty"`
	LastAttempt  string   `json:"last_attempt,omitempty"`
	Failures     *int     `json:"failures,omitempty"`
	Backend      string   `json:"backend,omitempty"`
	Recent       []string `json:"recent_generations,omitempty"`
	Impact       string   `json:"impact,omitempty"`
	Error        string   `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the served snapshot and of the snapshot store.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		components := map[string]componentStatus{
			"page":  pageStatus(d),
			"store": storeStatus(r.Context(), d),
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func pageStatus(d deps.Deps) componentStatus {
	failures, lastErr := d.MemoryIndex.Failures()
	status := componentStatus{
		LastReload:  formatTime(d.MemoryIndex.GetLastReload()),
		LastAttempt: formatTime(d.MemoryIndex.LastAttempt()),
		Failures:    &failures,
	}
	if lastErr != nil {
		status.Error = lastErr.Error()
	}

	snap, ok := d.MemoryIndex.Current()
	if !ok {
		status.Impact = "page-unavailable"
		return status
	}

	status.OK = true
	status.Result = snap.Result.Kind.String()
	status.GenerationID = snap.ID
	status.GeneratedAt = formatTime(snap.GeneratedAt)
	return status
}

func storeStatus(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:      true,
			Backend: "none",
			Impact:  "snapshot-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := componentStatus{Backend: d.Store.Backend()}
	if err := d.Store.Ping(ctx); err != nil {
		status.Impact = "snapshot-not-persisted"
		status.Error = err.Error()
		return status
	}

	status.OK = true
	recent, err := d.Store.RecentGenerations(ctx, store.DefaultHistorySize)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Recent = recent
	return status
}

func determineMode(components map[string]componentStatus) string {
	if page := components["page"]; !page.OK {
		return "critical"
	}
	if page := components["page"]; page.Failures != nil && *page.Failures > 0 {
		return "stale"
	}
	if st := components["store"]; !st.OK {
		return "degraded"
	}
	return "optimal"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(infraTimeFormat)
}
