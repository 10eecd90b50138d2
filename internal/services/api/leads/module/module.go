// Package module wires the lead export endpoints into the API router
package module

import (
	"net/http"

	modkit "leadhopper/internal/modkit"
	"leadhopper/internal/modkit/httpkit"
	str "leadhopper/internal/platform/strings"

	leadshttp "leadhopper/internal/services/api/leads/http"
	exportdom "leadhopper/internal/services/export/domain"
)

// Module exposes the preview and export-run endpoints
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	extra     func(httpkit.Router)

	handlers leadshttp.Deps
}

// Ports declares the injected worker port this module requires
type Ports struct {
	Runner exportdom.RunnerPort
}

// New constructs the leads module. The export runner port is mandatory;
// mounting without it is a wiring bug, so New panics
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("leads"),
		modkit.WithPrefix("/leads"),
	}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Runner == nil {
		panic("leads API module requires Runner port (from services/export)")
	}

	return &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		extra:     b.Register,
		handlers:  leadshttp.Deps{Runner: p.Runner},
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		rr = m.subrouter(rr)
		leadshttp.Register(rr, m.handlers)
		m.extra(rr)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "leads") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the ports this module exposes to others
func (m *Module) Ports() any { return nil }
