package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/termtab/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg    Registrar
	mws    []Middleware
	stream bool
}

var registry []entry

// Register a registrar with optional per-route middlewares.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterStream registers long-lived routes that must not get the
// per-request timeout.
func RegisterStream(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws, stream: true})
}

// RegisterAll is called once from server.New(). timeout wraps every
// non-stream route.
func RegisterAll(r chi.Router, d deps.Deps, timeout Middleware) {
	for _, e := range registry {
		sub := r
		if !e.stream && timeout != nil {
			sub = sub.With(timeout)
		}
		if len(e.mws) > 0 {
			sub = sub.With(e.mws...) // apply per-route middlewares
		}
		e.reg(sub, d)
	}
}
