package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "leadhopper/internal/platform/errors"
	phttp "leadhopper/internal/platform/net/http"
	pushdom "leadhopper/internal/services/push/domain"
)

type stubPusher struct {
	sum pushdom.Summary
	err error
	got pushdom.PushInput
}

func (s *stubPusher) Push(_ context.Context, r io.Reader, in pushdom.PushInput) (pushdom.Summary, error) {
	s.got = in
	_, _ = io.Copy(io.Discard, r)
	return s.sum, s.err
}

func mount(t *testing.T, d Deps) *chi.Mux {
	t.Helper()
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), d)
	return m
}

func pushFormBody(t *testing.T, withFile bool, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withFile {
		fw, err := mw.CreateFormFile("file", "leads.csv")
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write([]byte("Email\na@b.co\n")); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func post(t *testing.T, m *chi.Mux, body *bytes.Buffer, ctype string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodPost, "/", body)
	req.Header.Set("Content-Type", ctype)
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, req)
	return rr
}

func TestPushReturnsSummary(t *testing.T) {
	t.Parallel()

	st := &stubPusher{sum: pushdom.Summary{RunID: "run-1", ListID: "abc123", Pushed: 2}}
	m := mount(t, Deps{Pusher: st})

	body, ctype := pushFormBody(t, true, map[string]string{
		"list_id":    "abc123",
		"extra_tags": "Spring 2026, Import",
		"dry_run":    "true",
	})
	rr := post(t, m, body, ctype)

	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("code=%d body=%q", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"pushed":2`) {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if st.got.ListID != "abc123" || !st.got.DryRun {
		t.Fatalf("push input = %+v", st.got)
	}
	if len(st.got.ExtraTags) != 2 || st.got.ExtraTags[0] != "Spring 2026" {
		t.Fatalf("extra tags = %v", st.got.ExtraTags)
	}
}

func TestPushPartialFailureStays200(t *testing.T) {
	t.Parallel()

	st := &stubPusher{
		sum: pushdom.Summary{
			RunID:  "run-2",
			Pushed: 1,
			Failed: 1,
			Failures: []pushdom.Failure{
				{Seq: 2, Email: "bad@b.co", Stage: pushdom.StageMember, Error: "mailchimp: 400 Invalid Resource"},
			},
		},
		err: fmt.Errorf("push: 1 of 2 members failed: %w", pushdom.ErrPartial),
	}
	m := mount(t, Deps{Pusher: st})

	body, ctype := pushFormBody(t, true, map[string]string{"list_id": "abc123"})
	rr := post(t, m, body, ctype)

	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("partial failure should stay 200; code=%d body=%q", rr.Code, rr.Body.String())
	}
	got := rr.Body.String()
	if !strings.Contains(got, `"failed":1`) || !strings.Contains(got, "bad@b.co") {
		t.Fatalf("body = %q", got)
	}
}

func TestPushFatalErrorMapped(t *testing.T) {
	t.Parallel()

	st := &stubPusher{err: perr.InvalidArgf("push: list id required")}
	m := mount(t, Deps{Pusher: st})

	body, ctype := pushFormBody(t, true, nil)
	rr := post(t, m, body, ctype)

	if rr.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("code=%d body=%q", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "list id required") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestPushRequiresFile(t *testing.T) {
	t.Parallel()

	m := mount(t, Deps{Pusher: &stubPusher{}})
	body, ctype := pushFormBody(t, false, map[string]string{"list_id": "abc123"})
	rr := post(t, m, body, ctype)

	if rr.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("code=%d body=%q", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "file field required") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestSplitCSV(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b ,, c ", []string{"a", "b", "c"}},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("splitCSV(%q) = %v want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("splitCSV(%q) = %v want %v", c.in, got, c.want)
			}
		}
	}
}
