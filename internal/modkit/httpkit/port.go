package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "leadhopper/internal/platform/errors"
)

// TokenFunc parses a bearer token and returns the principal id
type TokenFunc func(token string) (userID string, err error)

// Port implements middleware.AuthPort by reading Authorization and
// delegating the token to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// NewStaticToken builds a Port that accepts exactly one shared token.
// principal is the id placed on the context for accepted requests
func NewStaticToken(token, principal string) *Port {
	want := []byte(token)
	return NewPortFunc(func(raw string) (string, error) {
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(raw), want) != 1 {
			return "", perrs.Unauthorizedf("invalid bearer token")
		}
		return principal, nil
	})
}

// bearerToken pulls the token out of an Authorization header, leniently:
// scheme case and padding around either part do not matter
func bearerToken(authz string) (string, bool) {
	s := strings.TrimSpace(authz)
	const scheme = "bearer"
	if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
		return "", false
	}
	tok := strings.TrimSpace(s[len(scheme):])
	return tok, tok != ""
}

// Parse returns the principal id for the request's bearer token.
// Missing or malformed headers, a zero Port, and parser rejections all
// come back as unauthorized
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}
