package handlers

import (
	"context"
	"net/http"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/store"
)

type componentStatus struct {
	OK      bool     `json:"ok"`
	Mode    string   `json:"mode,omitempty"`
	Backend string   `json:"backend,omitempty"`
	Entries *int     `json:"entries,omitempty"`
	Records []string `json:"records,omitempty"`
	Impact  string   `json:"impact,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of each component.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store":   checkStore(r.Context(), d),
			"sites":   checkSites(r.Context(), d),
			"weather": checkWeather(d),
			"seed":    checkSeed(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			Components: components,
		})
	}
}

func determineStatus(components map[string]componentStatus) string {
	if st, ok := components["store"]; ok && !st.OK {
		return "degraded" // store down = defaults only, nothing is remembered
	}
	return "ok"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:      false,
			Backend: d.Store.Backend(),
			Impact:  "theme-and-sites-not-persisted",
			Error:   err.Error(),
		}
	}
	status := componentStatus{OK: true, Backend: d.Store.Backend()}
	if e, ok := d.Store.(store.Enumerator); ok {
		records, err := e.Records(ctx)
		if err != nil {
			d.Logger.Warn("failed to list records", logger.Error(err))
		}
		status.Records = records
	}
	return status
}

func checkSites(ctx context.Context, d deps.Deps) componentStatus {
	list, err := d.Sites.List(ctx)
	if err != nil {
		return componentStatus{OK: false, Mode: string(d.Mode), Error: err.Error()}
	}
	n := len(list)
	return componentStatus{OK: true, Mode: string(d.Mode), Entries: &n}
}

func checkWeather(d deps.Deps) componentStatus {
	if d.Weather == nil {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	return componentStatus{OK: true, Mode: "enabled"}
}

func checkSeed(d deps.Deps) componentStatus {
	if d.SeedFile == "" {
		return componentStatus{OK: true, Mode: "none"}
	}
	return componentStatus{OK: true, Mode: d.SeedFile}
}
