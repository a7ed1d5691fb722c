package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

// Bookmark routes only exist in bookmark mode.
func registerBookmarks(r chi.Router, d deps.Deps) {
	if d.Bookmarks == nil {
		return
	}

	g := guarded(r, d)
	g.Get("/bookmarks/new", handlers.NewBookmarkForm(d))
	g.Get("/bookmarks/{index}/edit", handlers.EditBookmarkForm(d))

	l := limited(r, d)
	l.Post("/bookmarks", handlers.CreateBookmark(d))
	l.Post("/bookmarks/{index}", handlers.UpdateBookmark(d))
	l.Post("/bookmarks/{index}/delete", handlers.DeleteBookmark(d))
}
