package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/handlers"
)

func init() { Register(registerTheme) }

func registerTheme(r chi.Router, d deps.Deps) {
	l := limited(r, d)
	l.Post("/theme/apply", handlers.ApplyTheme(d))
	l.Post("/theme/reset", handlers.ResetTheme(d))
}
