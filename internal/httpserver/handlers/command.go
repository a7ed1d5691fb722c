package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/termtab/internal/command"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
)

// Command runs the line posted by the dashboard form (field "q").
func Command(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			d.Logger.Debug("invalid command form", logger.Error(err))
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		dispatch(w, r, d, r.PostFormValue("q"))
	}
}

// Search runs ?q= so the browser can use termtab as its search engine.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dispatch(w, r, d, r.URL.Query().Get("q"))
	}
}

func dispatch(w http.ResponseWriter, r *http.Request, d deps.Deps, input string) {
	res := d.Dispatcher.Dispatch(r.Context(), input, command.ClientInfoFromRequest(r))

	switch {
	case res.Redirect():
		http.Redirect(w, r, res.Action.URL, http.StatusFound)
	case res.Action.Kind == command.ActionLocal:
		renderPage(w, r, d, view{console: res.Console})
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
