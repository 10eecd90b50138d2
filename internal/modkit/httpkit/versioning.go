package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI scopes routes under /api/{version}. The version may carry a
// leading slash; it is normalized away
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//	  leads.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	prefix := "/api/" + strings.TrimPrefix(version, "/")
	MountUnder(r, prefix, mw, mount)
}

// MountAPIV1 mounts under /api/v1, the only version the binaries serve today
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
