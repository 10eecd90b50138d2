// Package http provides http transport for audiences
package http

import (
	stdhttp "net/http"

	"leadhopper/internal/adapters/mailchimp"
	"leadhopper/internal/modkit/httpkit"
	perr "leadhopper/internal/platform/errors"
	phttp "leadhopper/internal/platform/net/http"
	"leadhopper/internal/services/api/audiences/domain"
	pushdom "leadhopper/internal/services/push/domain"
)

// newClient builds a one-off client for credential checks; seam for tests
var newClient = func(key string) (*mailchimp.Client, error) {
	return mailchimp.New(mailchimp.Options{APIKey: key})
}

// Deps are the handler dependencies
type Deps struct {
	// Directory is nil when the API runs without a configured key
	Directory pushdom.DirectoryPort
}

type handlers struct{ deps Deps }

// Register mounts audience endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.list)
	// verify goes through the validating bind so key shape errors carry
	// the field message
	phttp.PostJSON(r, "/verify", h.verify)
}

// swagger:route GET /audiences Audiences audiencesList
// @Summary List audiences on the configured account
// @Tags Audiences
// @Produce json
// @Success 200 {array} pushdom.Audience ok
// @Router /audiences [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	if h.deps.Directory == nil {
		return nil, perr.Unavailablef("audiences: mailchimp client not configured")
	}
	return h.deps.Directory.Audiences(r.Context())
}

// swagger:route POST /audiences/verify Audiences audiencesVerify
// @Summary Verify an API key and count its audiences
// @Tags Audiences
// @Accept json
// @Produce json
// @Param payload body domain.VerifyInput true "Credentials"
// @Success 200 type domain.VerifyOutput ok
// @Router /audiences/verify [post]
func (h *handlers) verify(r *stdhttp.Request, in domain.VerifyInput) (any, error) {
	dc, err := mailchimp.Datacenter(in.APIKey)
	if err != nil {
		return nil, err
	}
	c, err := newClient(in.APIKey)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(r.Context()); err != nil {
		return nil, err
	}
	lists, err := c.AllLists(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.VerifyOutput{Healthy: true, Datacenter: dc, Audiences: len(lists)}, nil
}
