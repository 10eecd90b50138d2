// Package module wires the push endpoints into the API router
package module

import (
	"net/http"

	modkit "leadhopper/internal/modkit"
	"leadhopper/internal/modkit/httpkit"
	str "leadhopper/internal/platform/strings"

	pushhttp "leadhopper/internal/services/api/push/http"
	pushdom "leadhopper/internal/services/push/domain"
)

// Module exposes the push preview and run endpoints
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	extra     func(httpkit.Router)

	handlers pushhttp.Deps
}

// Ports declares the injected worker port this module requires
type Ports struct {
	Pusher pushdom.PusherPort
}

// New constructs the push API module. The pusher port is mandatory;
// mounting without it is a wiring bug, so New panics
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("push-api"),
		modkit.WithPrefix("/push"),
	}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Pusher == nil {
		panic("push API module requires Pusher port (from services/push)")
	}

	return &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		extra:     b.Register,
		handlers:  pushhttp.Deps{Pusher: p.Pusher},
	}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		rr = m.subrouter(rr)
		pushhttp.Register(rr, m.handlers)
		m.extra(rr)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "push-api") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the ports this module exposes to others
func (m *Module) Ports() any { return nil }
