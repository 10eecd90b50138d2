// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"leadhopper/internal/platform/logger"
)

// AccessLogOptions configures the structured access log
type AccessLogOptions struct {
	// Slow upgrades requests taking >= Slow to warn level; 0 disables
	Slow time.Duration
}

// statusWriter records the status and byte count flowing through it
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	if n > 0 {
		sw.written += n
	}
	return n, err
}

// AccessLog emits one structured line per request with method, path,
// status, elapsed time and bytes written. It logs through the
// request-scoped logger so lines carry the request id
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(sw, r)

			elapsed := time.Since(start)
			slow := opt.Slow > 0 && elapsed >= opt.Slow

			log := logger.C(r.Context())
			evt := log.Info()
			if slow {
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Int("bytes", sw.written).
				Dur("elapsed", elapsed).
				Msg("request served")
		})
	}
}
