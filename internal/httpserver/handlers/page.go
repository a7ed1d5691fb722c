package handlers

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/termtab/internal/clock"
	"github.com/MrSnakeDoc/termtab/internal/command"
	"github.com/MrSnakeDoc/termtab/internal/console"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/sites"
	"github.com/MrSnakeDoc/termtab/internal/theme"
	"github.com/MrSnakeDoc/termtab/internal/web"
)

// view is what a handler adds on top of the base dashboard.
type view struct {
	status  int
	console *console.Console
	alert   string
	modal   *web.BookmarkForm
}

// renderPage writes the dashboard with the current theme, clock and grid.
// Store failures degrade to defaults and an empty grid; the page always
// renders.
func renderPage(w http.ResponseWriter, r *http.Request, d deps.Deps, v view) {
	ctx := r.Context()

	colors, err := d.Theme.Load(ctx)
	if err != nil {
		d.Logger.Warn("failed to load colors, using defaults", logger.Error(err))
	}

	page := web.Page{
		ThemeCSS:       template.CSS(theme.CSS(colors)),
		Clock:          clock.Format(d.Now()),
		WeatherEnabled: d.Weather != nil,
		Mode:           d.Mode,
		Tiles:          loadTiles(ctx, d),
		Alert:          v.alert,
		Modal:          v.modal,
	}
	if v.console != nil {
		page.Console = v.console.Lines()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     command.CookieName,
		Value:    "1",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	status := v.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if err := d.Pages.Render(w, page); err != nil {
		d.Logger.Error("failed to render page", logger.Error(err))
	}
}

func loadTiles(ctx context.Context, d deps.Deps) []sites.Tile {
	list, err := d.Sites.List(ctx)
	if err != nil {
		d.Logger.Warn("failed to load sites", logger.Error(err))
	}
	return sites.Grid(d.Mode, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// wantsJSON reports whether the client asked for a JSON answer instead of
// the page.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
