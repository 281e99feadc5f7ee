package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/aboutme/internal/httpserver/deps"
	"github.com/MrSnakeDoc/aboutme/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/aboutme/internal/httpserver/mw"
)

func init() { Register(registerPage) }

func registerPage(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RatePerIPMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	}, d.Logger))

	page := handlers.Page(d)
	limited.Get("/", page)
	limited.Get("/about", page)
}
