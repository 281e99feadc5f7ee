package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/aboutme/internal/httpserver/deps"
	"github.com/MrSnakeDoc/aboutme/internal/httpserver/handlers"
)

func init() { Register(registerAssets) }

func registerAssets(r chi.Router, d deps.Deps) {
	if d.AssetsDir == "" {
		return
	}
	r.Handle("/assets/*", handlers.Assets("/assets", d.AssetsDir))
}
