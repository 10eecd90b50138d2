package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler exposes pprof under prefix (typically "/debug") when enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	// chi's profiler expects to sit at its own root, so strip the prefix
	h := stdhttp.StripPrefix(prefix, mw.Profiler())

	forward := func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		h.ServeHTTP(w, req)
	}
	r.Get(prefix, forward)
	r.Get(prefix+"/*", forward)
}
