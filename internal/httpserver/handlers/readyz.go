package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/logger"
)

const storePingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Store string `json:"store"`
}

// Readyz is ready when the store answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storePingTimeout)
		defer cancel()

		resp := readyzResponse{Ready: true, Store: d.Store.Backend()}
		status := http.StatusOK
		if err := d.Store.Ping(ctx); err != nil {
			d.Logger.Warn("store not ready", logger.Error(err))
			resp.Ready = false
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
