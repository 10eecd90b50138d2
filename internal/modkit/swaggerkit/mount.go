// Package swaggerkit serves the OpenAPI spec and swagger UI
package swaggerkit

import (
	"net/http"

	phttp "leadhopper/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// base is where the UI lives; the JSON spec hangs off it
const base = "/api/docs"

// Mount exposes the swagger UI and its spec when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	// the UI assets resolve relative paths, so the bare base redirects
	// to the slashed form
	r.Get(base, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, base+"/", http.StatusPermanentRedirect)
	})
	r.Get(base+"/doc.json", serveDocJSON())
	r.Handle(base+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(base+"/doc.json"),
	))
}
