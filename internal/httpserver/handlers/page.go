package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/aboutme/internal/domain"
	"github.com/MrSnakeDoc/aboutme/internal/httpserver/deps"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
)

// Page serves the current about page snapshot.
//
// Rendered snapshots are served with an ETag and shared-cache headers,
// NotFound snapshots answer 404 and a missing snapshot answers 503.
// A snapshot older than the revalidate interval is still served while a
// background regeneration is scheduled.
func Page(d deps.Deps) http.HandlerFunc {
	cacheControl := fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate",
		max(int(d.RevalidateInterval.Seconds()), 1))

	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := d.MemoryIndex.Current()
		if !ok {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "page is being generated", http.StatusServiceUnavailable)
			return
		}

		if d.Revalidator != nil && snap.Age(d.Now()) >= d.RevalidateInterval {
			d.Revalidator.Revalidate()
		}

		switch snap.Result.Kind {
		case domain.ResultNotFound:
			w.Header().Set("Cache-Control", cacheControl)
			http.NotFound(w, r)
		case domain.ResultRendered:
			page := snap.Result.Page
			h := w.Header()
			h.Set("Content-Type", "text/html; charset=utf-8")
			h.Set("Cache-Control", cacheControl)
			h.Set("ETag", page.ETag)
			h.Set("X-Generation-Id", snap.ID)

			if etagMatches(r.Header.Get("If-None-Match"), page.ETag) {
				w.WriteHeader(http.StatusNotModified)
				return
			}

			h.Set("Content-Length", strconv.Itoa(len(page.HTML)))
			w.WriteHeader(http.StatusOK)
			if r.Method == http.MethodHead {
				return
			}
			if _, err := w.Write(page.HTML); err != nil {
				d.Logger.Debug("failed to write page", logger.Error(err))
			}
		default:
			d.Logger.Error("unknown snapshot result",
				logger.String("kind", snap.Result.Kind.String()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// etagMatches reports whether an If-None-Match header matches etag.
func etagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
