package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
)

// Dashboard renders the new-tab page with an empty console.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, d, view{})
	}
}
