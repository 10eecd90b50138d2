// Package module wires the audience endpoints into the API router
package module

import (
	"net/http"

	modkit "leadhopper/internal/modkit"
	"leadhopper/internal/modkit/httpkit"
	str "leadhopper/internal/platform/strings"

	audhttp "leadhopper/internal/services/api/audiences/http"
	pushdom "leadhopper/internal/services/push/domain"
)

// Module exposes audience listing and verification endpoints
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	extra     func(httpkit.Router)

	handlers audhttp.Deps
}

// Ports declares the injected worker port for this module.
// Directory may be nil; the endpoints then answer 503
type Ports struct {
	Directory pushdom.DirectoryPort
}

// New constructs the audiences module with the provided options
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("audiences"),
		modkit.WithPrefix("/audiences"),
	}, opts...)...)

	p, _ := b.Ports.(Ports)

	return &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		extra:     b.Register,
		handlers:  audhttp.Deps{Directory: p.Directory},
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		rr = m.subrouter(rr)
		audhttp.Register(rr, m.handlers)
		m.extra(rr)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "audiences") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the ports this module exposes to others
func (m *Module) Ports() any { return nil }
