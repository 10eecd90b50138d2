package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "leadhopper/internal/platform/net/http"
	"leadhopper/internal/platform/net/middleware"
)

// CommonStack is the baseline middleware every mounted API scope gets.
// Auth is not part of it; main composes that per route group
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation first so everything downstream can log the id
		middleware.RequestID(),
		middleware.RealIP(),

		middleware.RecoverJSON,

		middleware.NoCache(),

		middleware.AccessLog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),

		// the API only ever takes JSON or file uploads
		middleware.AllowContentType("application/json", "multipart/form-data"),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth adapts an AuthPort into middleware writing platform JSON errors
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
