package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/termtab/internal/web"
)

func init() { Register(registerDashboard) }

func registerDashboard(r chi.Router, d deps.Deps) {
	g := guarded(r, d)
	g.Get("/", handlers.Dashboard(d))
	g.Handle("/static/*", web.Static())
}
