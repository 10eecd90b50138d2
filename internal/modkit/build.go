package modkit

import (
	"net/http"

	"leadhopper/internal/modkit/httpkit"
)

// Option mutates build configuration for a module
type Option func(*buildCfg)

// buildCfg accumulates option state until Build snapshots it
type buildCfg struct {
	name      string
	prefix    string
	mw        []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool
	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// WithName overrides the module's default name
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix sets the path prefix the module mounts under
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares appends per-module middleware, applied in the order given
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts hands a module the port bundle it declared. The concrete
// type belongs to the receiving module; Build carries it opaquely
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}

// WithSwagger toggles swagger exposure for the module
func WithSwagger(enabled bool) Option {
	return func(c *buildCfg) { c.swaggerOn = enabled }
}

// WithSubrouter installs a router-wrapping hook run at mount time
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(c *buildCfg) { c.subrouter = fn }
}

// WithRegister adds an extra endpoint-registration hook after the
// module's own routes
func WithRegister(fn func(httpkit.Router)) Option {
	return func(c *buildCfg) { c.register = fn }
}

// Built is the snapshot a module constructor reads back after applying
// its options
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool

	// mount-time hooks; Build guarantees both are non-nil
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build folds opts into a Built. Hook fields default to pass-through and
// no-op so callers never nil check them
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}

	sub := c.subrouter
	if sub == nil {
		sub = func(r httpkit.Router) httpkit.Router { return r }
	}
	reg := c.register
	if reg == nil {
		reg = func(httpkit.Router) {}
	}

	// copy the middleware slice so later option reuse cannot alias it
	mw := make([]func(http.Handler) http.Handler, len(c.mw))
	copy(mw, c.mw)

	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        mw,
		Ports:     c.ports,
		SwaggerOn: c.swaggerOn,
		Subrouter: sub,
		Register:  reg,
	}
}
