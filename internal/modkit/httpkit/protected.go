package httpkit

import (
	"leadhopper/internal/platform/net/middleware"
)

// Protected groups routes behind bearer auth. Routes registered by fn
// reject requests the port does not accept; sibling routes on r are
// untouched
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
