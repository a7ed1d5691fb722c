package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/handlers"
)

func init() {
	Register(registerAPI)
	RegisterStream(registerClock)
}

func registerAPI(r chi.Router, d deps.Deps) {
	g := guarded(r, d)
	g.Get("/api/sites", handlers.APISites(d))
	g.Get("/api/theme", handlers.APITheme(d))
	g.Get("/api/weather", handlers.APIWeather(d))
}

func registerClock(r chi.Router, d deps.Deps) {
	guarded(r, d).Get("/api/clock", handlers.APIClock(d))
}
