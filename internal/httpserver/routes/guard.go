package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
	"github.com/MrSnakeDoc/termtab/internal/httpserver/mw"
)

// guarded applies the access restrictions every dashboard route shares.
func guarded(r chi.Router, d deps.Deps) chi.Router {
	return r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	)
}

// limited is guarded plus the per-IP rate limit, for routes that write to
// the store.
func limited(r chi.Router, d deps.Deps) chi.Router {
	return guarded(r, d).With(mw.RateLimit(d.RateLimit, d.TrustProxy, d.Logger))
}
