package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/handlers"
)

func init() { Register(registerCommand) }

func registerCommand(r chi.Router, d deps.Deps) {
	l := limited(r, d)
	l.Get("/search", handlers.Search(d))
	l.Post("/command", handlers.Command(d))
}
