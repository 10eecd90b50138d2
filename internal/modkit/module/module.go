// Package module holds the module contract and the port registry
package module

import (
	phttp "leadhopper/internal/platform/net/http"
)

// Module is the contract every mountable unit satisfies. It lives in its
// own package so a service can export a Ports type next to its module
// without dragging modkit into the import graph
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
