package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/termtab/internal/command"
	"github.com/MrSnakeDoc/termtab/internal/console"
	"github.com/MrSnakeDoc/termtab/internal/domain"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/theme"
)

type themeResponse struct {
	Colors domain.ColorTheme `json:"colors"`
	CSS    string            `json:"css"`
}

// ApplyTheme stores the non-blank colors posted by the config panel.
func ApplyTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		values := make(map[string]string, len(domain.Slots))
		for _, slot := range domain.Slots {
			values[string(slot)] = r.PostFormValue(string(slot))
		}

		colors, err := d.Theme.Apply(r.Context(), values)
		if err != nil {
			d.Logger.Error("failed to apply colors", logger.Error(err))
			themeFailed(w, r, d, err)
			return
		}

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, themeResponse{Colors: colors, CSS: theme.CSS(colors)})
			return
		}

		out := console.New()
		command.Config(out, colors)
		command.ColorsApplied(out)
		renderPage(w, r, d, view{console: out})
	}
}

// ResetTheme removes the stored colors.
func ResetTheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colors, err := d.Theme.Reset(r.Context())
		if err != nil {
			d.Logger.Error("failed to reset colors", logger.Error(err))
			themeFailed(w, r, d, err)
			return
		}

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, themeResponse{Colors: colors, CSS: theme.CSS(colors)})
			return
		}

		out := console.New()
		command.Config(out, colors)
		command.ColorsReset(out)
		renderPage(w, r, d, view{console: out})
	}
}

func themeFailed(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	renderPage(w, r, d, view{status: http.StatusInternalServerError, alert: "Could not save colors, try again."})
}
