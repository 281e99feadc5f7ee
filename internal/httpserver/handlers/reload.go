package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/aboutme/internal/httpserver/deps"
	"github.com/MrSnakeDoc/aboutme/internal/logger"
	"github.com/MrSnakeDoc/aboutme/internal/utils"
)

// Reload triggers a manual regeneration of the page
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual regeneration triggered via endpoint",
				logger.String("client_ip", ip))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Regeneration triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		default:
			d.Logger.Warn("regeneration already pending",
				logger.String("client_ip", ip))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("⏳ Regeneration already pending, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
