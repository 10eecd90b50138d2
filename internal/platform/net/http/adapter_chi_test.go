package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChiMiddlewareScoping(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())

	r.Use(func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set("X-Root", "1")
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/runs", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("runs"))
	})

	// group middleware must stay inside the group
	r.Group(func(gr Router) {
		gr.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.Header().Set("X-Group", "1")
				next.ServeHTTP(w, req)
			})
		})
		if gr.Mux() == nil {
			t.Fatalf("group Mux() returned nil")
		}
		gr.Get("/push/status", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte("idle"))
		})
	})

	// routed subtree with its own middleware
	r.Route("/leads", func(sr Router) {
		sr.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.Header().Set("X-Leads", "1")
				next.ServeHTTP(w, req)
			})
		})
		if sr.Mux() == nil {
			t.Fatalf("route Mux() returned nil")
		}
		sr.Get("/count", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte("42"))
		})
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(stdhttp.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, req)
		return rr
	}

	rr := get("/runs")
	if rr.Code != 200 || rr.Body.String() != "runs" {
		t.Fatalf("GET /runs => code=%d body=%q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Root") != "1" {
		t.Fatalf("root middleware missing on root route")
	}
	if rr.Header().Get("X-Group") != "" || rr.Header().Get("X-Leads") != "" {
		t.Fatalf("scoped middleware leaked onto root route: %v", rr.Header())
	}

	rr = get("/push/status")
	if rr.Code != 200 || rr.Body.String() != "idle" {
		t.Fatalf("GET /push/status => code=%d body=%q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Root") != "1" || rr.Header().Get("X-Group") != "1" {
		t.Fatalf("group route headers: %v", rr.Header())
	}

	rr = get("/leads/count")
	if rr.Code != 200 || rr.Body.String() != "42" {
		t.Fatalf("GET /leads/count => code=%d body=%q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Root") != "1" || rr.Header().Get("X-Leads") != "1" {
		t.Fatalf("routed subtree headers: %v", rr.Header())
	}
}

func TestAdaptChiVerbsAndNesting(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())

	r.Head("/audiences", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		w.Header().Set("X-Head", "1")
	})
	r.Options("/audiences", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		w.Header().Set("Allow", "GET, HEAD, OPTIONS")
		w.WriteHeader(204)
	})
	r.Handle("/metrics", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte("ok"))
	}))

	// every verb and Handle must work on a subrouter too
	r.Group(func(gr Router) {
		gr.Post("/push", func(w stdhttp.ResponseWriter, req *stdhttp.Request) { w.WriteHeader(202) })
		gr.Put("/mapping", func(w stdhttp.ResponseWriter, req *stdhttp.Request) { w.WriteHeader(200) })
		gr.Patch("/mapping", func(w stdhttp.ResponseWriter, req *stdhttp.Request) { w.WriteHeader(200) })
		gr.Delete("/mapping", func(w stdhttp.ResponseWriter, req *stdhttp.Request) { w.WriteHeader(204) })
		gr.Head("/push", func(w stdhttp.ResponseWriter, req *stdhttp.Request) { w.Header().Set("X-Push-Head", "1") })
		gr.Options("/push", func(w stdhttp.ResponseWriter, req *stdhttp.Request) { w.WriteHeader(204) })
		gr.Handle("/push/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte("raw"))
		}))

		gr.Group(func(ngr Router) {
			ngr.Get("/push/last", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.WriteHeader(200)
				_, _ = w.Write([]byte("run-1"))
			})
		})
	})

	r.Route("/api", func(sr Router) {
		sr.Post("/export", func(w stdhttp.ResponseWriter, req *stdhttp.Request) { w.WriteHeader(201) })
		sr.Route("/v1", func(nr Router) {
			nr.Get("/health", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.WriteHeader(200)
				_, _ = w.Write([]byte("healthy"))
			})
		})
	})

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, req)
		return rr
	}

	rr := do(stdhttp.MethodHead, "/audiences")
	if rr.Code != 200 || rr.Body.Len() != 0 || rr.Header().Get("X-Head") != "1" {
		t.Fatalf("HEAD /audiences => code=%d body_len=%d X-Head=%q", rr.Code, rr.Body.Len(), rr.Header().Get("X-Head"))
	}
	rr = do(stdhttp.MethodOptions, "/audiences")
	if rr.Code != 204 || rr.Header().Get("Allow") == "" {
		t.Fatalf("OPTIONS /audiences => code=%d Allow=%q", rr.Code, rr.Header().Get("Allow"))
	}
	rr = do(stdhttp.MethodGet, "/metrics")
	if rr.Code != 200 || rr.Body.String() != "ok" {
		t.Fatalf("GET /metrics => code=%d body=%q", rr.Code, rr.Body.String())
	}

	if rr = do(stdhttp.MethodPost, "/push"); rr.Code != 202 {
		t.Fatalf("POST /push => %d", rr.Code)
	}
	if rr = do(stdhttp.MethodPut, "/mapping"); rr.Code != 200 {
		t.Fatalf("PUT /mapping => %d", rr.Code)
	}
	if rr = do(stdhttp.MethodPatch, "/mapping"); rr.Code != 200 {
		t.Fatalf("PATCH /mapping => %d", rr.Code)
	}
	if rr = do(stdhttp.MethodDelete, "/mapping"); rr.Code != 204 {
		t.Fatalf("DELETE /mapping => %d", rr.Code)
	}
	if rr = do(stdhttp.MethodHead, "/push"); rr.Code != 200 || rr.Body.Len() != 0 || rr.Header().Get("X-Push-Head") != "1" {
		t.Fatalf("HEAD /push => code=%d len=%d X-Push-Head=%q", rr.Code, rr.Body.Len(), rr.Header().Get("X-Push-Head"))
	}
	if rr = do(stdhttp.MethodOptions, "/push"); rr.Code != 204 {
		t.Fatalf("OPTIONS /push => %d", rr.Code)
	}
	rr = do(stdhttp.MethodGet, "/push/raw")
	if rr.Code != 200 || rr.Body.String() != "raw" {
		t.Fatalf("GET /push/raw => code=%d body=%q", rr.Code, rr.Body.String())
	}

	rr = do(stdhttp.MethodGet, "/push/last")
	if rr.Code != 200 || rr.Body.String() != "run-1" {
		t.Fatalf("GET /push/last => code=%d body=%q", rr.Code, rr.Body.String())
	}

	rr = do(stdhttp.MethodPost, "/api/export")
	if rr.Code != 201 {
		t.Fatalf("POST /api/export => %d", rr.Code)
	}
	rr = do(stdhttp.MethodGet, "/api/v1/health")
	if rr.Code != 200 || rr.Body.String() != "healthy" {
		t.Fatalf("GET /api/v1/health => code=%d body=%q", rr.Code, rr.Body.String())
	}
}
