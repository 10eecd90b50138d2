// Package module wires the meta endpoints into the API router
package module

import (
	"net/http"
	"time"

	modkit "leadhopper/internal/modkit"
	"leadhopper/internal/modkit/httpkit"
	str "leadhopper/internal/platform/strings"

	metahttp "leadhopper/internal/services/api/meta/http"
)

// Module serves liveness, readiness and build info under its prefix
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	extra     func(httpkit.Router)

	handlers metahttp.Deps
}

// New constructs the meta module. A nil Mailchimp client is fine; the
// readiness probe then reports its check as skipped
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		extra:     b.Register,
		handlers: metahttp.Deps{
			ServiceName: "leadhopper-api",
			StartedAt:   time.Now(),
		},
	}
	// assign only a non-nil client so the Pinger interface stays nil
	// in file-only mode
	if deps.Chimp != nil {
		m.handlers.Chimp = deps.Chimp
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		rr = m.subrouter(rr)
		metahttp.Register(rr, m.handlers)
		m.extra(rr)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
