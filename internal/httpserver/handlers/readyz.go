package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/aboutme/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Result string `json:"result,omitempty"`
}

// Readyz is ready once a snapshot (rendered or not found) can be served.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		snap, ok := d.MemoryIndex.Current()
		if !ok {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(readyzResponse{Ready: false})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:  true,
			Result: snap.Result.Kind.String(),
		})
	}
}
