package httpkit

import (
	"net/http"
	"strings"

	perrs "leadhopper/internal/platform/errors"
	pnet "leadhopper/internal/platform/net"
)

// User returns the authenticated principal id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// MustUser returns the authenticated principal id or panics
func MustUser(r *http.Request) string {
	uid, err := User(r)
	if err != nil {
		panic(err)
	}
	return uid
}

// Bearer returns the raw bearer token from the Authorization header.
// The scheme must lead the header; only the token may carry padding
func Bearer(r *http.Request) (string, error) {
	const scheme = "bearer "
	authz := r.Header.Get("Authorization")
	if len(authz) >= len(scheme) && strings.EqualFold(authz[:len(scheme)], scheme) {
		if tok := strings.TrimSpace(authz[len(scheme):]); tok != "" {
			return tok, nil
		}
	}
	return "", perrs.Unauthorizedf("missing bearer token")
}

// MustBearer returns the raw bearer token or panics
// only use on routes protected by the auth middleware
func MustBearer(r *http.Request) string {
	raw, err := Bearer(r)
	if err != nil {
		panic(err)
	}
	return raw
}
