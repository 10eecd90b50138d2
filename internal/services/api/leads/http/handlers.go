// Package http provides http transport for lead file runs
package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
	stdhttp "net/http"
	"path"
	"strconv"
	"strings"

	"leadhopper/internal/core/tagmap"
	"leadhopper/internal/modkit/httpkit"
	perr "leadhopper/internal/platform/errors"
	exportdom "leadhopper/internal/services/export/domain"
)

// maxUploadMemory bounds the in-memory part of a multipart parse;
// bigger uploads spill to temp files
const maxUploadMemory = 32 << 20

// Deps are the handler dependencies
type Deps struct {
	Runner exportdom.RunnerPort
}

type handlers struct{ deps Deps }

// Register mounts lead endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	// normalize streams CSV back, so it bypasses the JSON envelope
	r.Post("/normalize", h.normalize)
	httpkit.Post(r, "/preview", h.preview)
}

// swagger:route POST /leads/normalize Leads leadsNormalize
// @Summary Normalize a lead export into Mailchimp-importable CSV
// @Tags Leads
// @Accept mpfd
// @Produce text/csv
// @Param file formData file true "Lead CSV export, plain or gzipped"
// @Param mapping formData string false "Inline tag mapping document (YAML or JSON)"
// @Success 200 {file} file "normalized CSV attachment"
// @Router /leads/normalize [post]
func (h *handlers) normalize(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, f, name, err := runForm(r)
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	sum, err := h.deps.Runner.Run(r.Context(), f, &buf, in)
	if err != nil {
		httpkit.RespondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(name)))
	w.Header().Set("X-Run-Id", sum.RunID)
	w.Header().Set("X-Rows-Emitted", strconv.Itoa(sum.Emitted))
	_, _ = buf.WriteTo(w)
}

// swagger:route POST /leads/preview Leads leadsPreview
// @Summary Preview the first rows a normalize run would emit
// @Tags Leads
// @Accept mpfd
// @Produce json
// @Param file formData file true "Lead CSV export, plain or gzipped"
// @Param limit formData int false "Max preview rows, default 20"
// @Success 200 type exportdom.Preview ok
// @Router /leads/preview [post]
func (h *handlers) preview(r *stdhttp.Request) (any, error) {
	in, f, _, err := runForm(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	limit := 0
	if v := r.FormValue("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.InvalidArgf("leads: field limit must be a non-negative integer")
		}
		limit = n
	}
	return h.deps.Runner.Preview(r.Context(), f, in, limit)
}

// runForm pulls the shared run options out of a multipart form.
// The caller owns the returned file handle
func runForm(r *stdhttp.Request) (exportdom.RunInput, multipart.File, string, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return exportdom.RunInput{}, nil, "", perr.InvalidArgf("leads: parse multipart form: %v", err)
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return exportdom.RunInput{}, nil, "", perr.InvalidArgf("leads: file field required")
	}

	in := exportdom.RunInput{
		Encoding:   r.FormValue("encoding"),
		Delimiters: r.FormValue("delimiters"),
		Tagger:     r.FormValue("tagger"),
	}
	if v := strings.TrimSpace(r.FormValue("email_columns")); v != "" {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				in.EmailColumns = append(in.EmailColumns, c)
			}
		}
	}

	var ferr error
	boolField := func(name string) bool {
		v := r.FormValue(name)
		if v == "" {
			return false
		}
		b, err := strconv.ParseBool(v)
		if err != nil && ferr == nil {
			ferr = perr.InvalidArgf("leads: field %s must be a boolean, got %q", name, v)
		}
		return b
	}
	in.ExcludeNoEmail = boolField("exclude_no_email")
	in.Dedupe = boolField("dedupe")
	in.Strict = boolField("strict")
	if ferr != nil {
		_ = f.Close()
		return exportdom.RunInput{}, nil, "", ferr
	}

	if doc := r.FormValue("mapping"); strings.TrimSpace(doc) != "" {
		m, err := tagmap.Parse([]byte(doc))
		if err != nil {
			_ = f.Close()
			return exportdom.RunInput{}, nil, "", perr.InvalidArgf("leads: mapping: %v", err)
		}
		in.Mapping = m
	}
	return in, f, hdr.Filename, nil
}

// downloadName derives the attachment name from the uploaded one
func downloadName(upload string) string {
	base := path.Base(strings.ReplaceAll(upload, "\\", "/"))
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".csv")
	if base == "" || base == "." {
		base = "leads"
	}
	return base + "_mailchimp.csv"
}
