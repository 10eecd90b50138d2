package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "leadhopper/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestProtectedGroupsUnderAuth(t *testing.T) {
	t.Parallel()

	r := phttp.AdaptChi(chi.NewRouter())
	port := NewStaticToken("s3cret", "api")

	ok := phttp.Handle(func(*http.Request) phttp.Response { return phttp.OK("through") })

	r.Get("/open", ok)
	Protected(r, port, func(gr Router) {
		gr.Get("/guarded", ok)
	})

	serve := func(path, authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, req)
		return rr
	}

	// sibling route stays open
	if rr := serve("/open", ""); rr.Code != http.StatusOK {
		t.Fatalf("/open without token: status %d, want 200", rr.Code)
	}

	if rr := serve("/guarded", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("/guarded without token: status %d, want 401", rr.Code)
	}
	if rr := serve("/guarded", "Bearer wrong"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("/guarded with bad token: status %d, want 401", rr.Code)
	}

	rr := serve("/guarded", "Bearer s3cret")
	if rr.Code != http.StatusOK {
		t.Fatalf("/guarded with token: status %d body %s, want 200", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "through") {
		t.Fatalf("guarded handler did not run: %s", rr.Body.String())
	}
}

func TestProtectedForwardsRegistrations(t *testing.T) {
	t.Parallel()

	root := &spyRouter{}
	port := NewStaticToken("tok", "api")

	var h phttp.Handler
	Protected(root, port, func(gr Router) {
		gr.Get("/leads", h)
		gr.Post("/push", h)
		gr.Route("/audiences", func(rr Router) {
			rr.Delete("/stale", h)
		})
	})

	// wiring applies the auth middleware exactly once on the group
	if root.useCalls != 1 || root.useLens[0] != 1 {
		t.Fatalf("Use calls=%d lens=%v, want one call with the auth middleware", root.useCalls, root.useLens)
	}
	if len(root.prefixes) != 1 || root.prefixes[0] != "/audiences" {
		t.Fatalf("nested Route prefixes = %v, want [/audiences]", root.prefixes)
	}

	want := []struct{ verb, path string }{
		{"GET", "/leads"},
		{"POST", "/push"},
		{"DELETE", "/stale"},
	}
	if len(root.calls) != len(want) {
		t.Fatalf("registered %d routes, want %d: %+v", len(root.calls), len(want), root.calls)
	}
	for i, w := range want {
		if root.calls[i].verb != w.verb || root.calls[i].path != w.path {
			t.Fatalf("call %d = %s %s, want %s %s", i, root.calls[i].verb, root.calls[i].path, w.verb, w.path)
		}
	}
}
