package modkit

import (
	phttp "leadhopper/internal/platform/net/http"
)

// Module is what the api service (and the CLI binaries) expect from a
// mountable unit: routes, an optional port bundle, and a name.
// Deliberately small; modules know nothing about each other
type Module interface {
	// MountRoutes attaches the module's HTTP routes to the router seam.
	// Worker modules with no HTTP surface implement this as a no-op
	MountRoutes(r phttp.Router)

	// Ports returns the module's exported port bundle, or nil
	Ports() any

	// Name identifies the module in logs and the registry
	Name() string
}

// Builder is the New(deps, opts...) shape every module constructor follows
type Builder func(Deps, ...Option) Module
