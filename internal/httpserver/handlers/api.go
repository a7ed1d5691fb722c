package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/termtab/internal/clock"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/sites"
	"github.com/MrSnakeDoc/termtab/internal/theme"
	"github.com/MrSnakeDoc/termtab/internal/utils"
	"github.com/MrSnakeDoc/termtab/internal/weather"
)

type gridResponse struct {
	Mode  sites.Mode   `json:"mode"`
	Tiles []sites.Tile `json:"tiles"`
}

type weatherResponse struct {
	Text   string          `json:"text"`
	Report *weather.Report `json:"report,omitempty"`
}

// APISites returns the grid as JSON.
func APISites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Sites.List(r.Context())
		if err != nil {
			d.Logger.Error("failed to load sites", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load sites"})
			return
		}
		writeJSON(w, http.StatusOK, gridResponse{Mode: d.Mode, Tiles: sites.Grid(d.Mode, list)})
	}
}

// APITheme returns the resolved colors.
func APITheme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		colors, err := d.Theme.Load(r.Context())
		if err != nil {
			d.Logger.Warn("failed to load colors, using defaults", logger.Error(err))
		}
		writeJSON(w, http.StatusOK, themeResponse{Colors: colors, CSS: theme.CSS(colors)})
	}
}

// APIWeather runs the weather lookup for the visitor's address inside the
// request. Failures are not errors to the page: it gets the offline text
// with a 200.
func APIWeather(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Weather == nil {
			writeJSON(w, http.StatusOK, weatherResponse{Text: weather.Offline})
			return
		}

		text, report := d.Weather.Line(r.Context(), utils.ClientIP(r, d.TrustProxy))
		writeJSON(w, http.StatusOK, weatherResponse{Text: text, Report: report})
	}
}

// APIClock streams the formatted time as server-sent events until the client
// goes away.
func APIClock(d deps.Deps) http.HandlerFunc {
	interval := d.ClockInterval
	if interval <= 0 {
		interval = time.Second
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go func() {
			select {
			case <-d.StreamsDone:
				cancel()
			case <-ctx.Done():
			}
		}()

		rc := http.NewResponseController(w)
		// the stream outlives the server's WriteTimeout
		if err := rc.SetWriteDeadline(time.Time{}); err != nil {
			d.Logger.Debug("clock stream keeps server write deadline", logger.Error(err))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		err := clock.Run(ctx, interval, d.Now, func(now string) error {
			if _, err := fmt.Fprintf(w, "data: %s\n\n", now); err != nil {
				return err
			}
			return rc.Flush()
		})
		if err != nil {
			d.Logger.Debug("clock stream closed", logger.Error(err))
		}
	}
}
