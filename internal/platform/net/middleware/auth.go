package middleware

import (
	"net/http"

	pnet "leadhopper/internal/platform/net"
)

// AuthPort is a tiny seam auth schemes implement (e.g. a static bearer token)
type AuthPort interface {
	// Parse returns the principal id from the request or an error
	Parse(r *http.Request) (userID string, err error)
}

// Auth enforces the port. A nil port yields an identity middleware,
// which is how unauthenticated deployments run
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	if p == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
		})
	}
}
