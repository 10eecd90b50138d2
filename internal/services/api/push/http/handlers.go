// Package http provides http transport for push runs
package http

import (
	"errors"
	"mime/multipart"
	stdhttp "net/http"
	"strconv"
	"strings"

	"leadhopper/internal/core/tagmap"
	"leadhopper/internal/modkit/httpkit"
	perr "leadhopper/internal/platform/errors"
	pushdom "leadhopper/internal/services/push/domain"
)

// maxUploadMemory bounds the in-memory part of a multipart parse;
// bigger uploads spill to temp files
const maxUploadMemory = 32 << 20

// Deps are the handler dependencies
type Deps struct {
	Pusher pushdom.PusherPort
}

type handlers struct{ deps Deps }

// Register mounts push endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Post(r, "/", h.push)
}

// swagger:route POST /push Push pushRun
// @Summary Push a lead export into a Mailchimp audience
// @Tags Push
// @Accept mpfd
// @Produce json
// @Param file formData file true "Lead CSV export, plain or gzipped"
// @Param list_id formData string false "Target audience; required unless dry_run"
// @Param dry_run formData bool false "Walk the pipeline without writing members"
// @Success 200 type pushdom.Summary ok
// @Router /push [post]
func (h *handlers) push(r *stdhttp.Request) (any, error) {
	in, f, err := pushForm(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sum, err := h.deps.Pusher.Push(r.Context(), f, in)
	if errors.Is(err, pushdom.ErrPartial) {
		// the run finished; the summary carries the failure detail
		return sum, nil
	}
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// pushForm pulls run options out of a multipart form.
// The caller owns the returned file handle
func pushForm(r *stdhttp.Request) (pushdom.PushInput, multipart.File, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return pushdom.PushInput{}, nil, perr.InvalidArgf("push: parse multipart form: %v", err)
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return pushdom.PushInput{}, nil, perr.InvalidArgf("push: file field required")
	}

	in := pushdom.PushInput{
		ListID:     r.FormValue("list_id"),
		Encoding:   r.FormValue("encoding"),
		Delimiters: r.FormValue("delimiters"),
		Tagger:     r.FormValue("tagger"),
	}
	in.EmailColumns = splitCSV(r.FormValue("email_columns"))
	in.ExtraTags = splitCSV(r.FormValue("extra_tags"))

	var ferr error
	boolField := func(name string) bool {
		v := r.FormValue(name)
		if v == "" {
			return false
		}
		b, err := strconv.ParseBool(v)
		if err != nil && ferr == nil {
			ferr = perr.InvalidArgf("push: field %s must be a boolean, got %q", name, v)
		}
		return b
	}
	in.Dedupe = boolField("dedupe")
	in.Strict = boolField("strict")
	in.DryRun = boolField("dry_run")
	if ferr != nil {
		_ = f.Close()
		return pushdom.PushInput{}, nil, ferr
	}

	if doc := r.FormValue("mapping"); strings.TrimSpace(doc) != "" {
		m, err := tagmap.Parse([]byte(doc))
		if err != nil {
			_ = f.Close()
			return pushdom.PushInput{}, nil, perr.InvalidArgf("push: mapping: %v", err)
		}
		in.Mapping = m
	}
	return in, f, nil
}

// splitCSV splits a comma-separated form value, dropping blanks
func splitCSV(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
