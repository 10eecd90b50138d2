package modkit

import (
	"net/http"
	"testing"

	phttp "leadhopper/internal/platform/net/http"
)

func TestScalarOptions(t *testing.T) {
	t.Parallel()

	var c buildCfg
	WithName("push")(&c)
	WithPrefix("/push")(&c)

	if c.name != "push" {
		t.Fatalf("name = %q, want push", c.name)
	}
	if c.prefix != "/push" {
		t.Fatalf("prefix = %q, want /push", c.prefix)
	}
}

func TestWithSwaggerToggles(t *testing.T) {
	t.Parallel()

	var c buildCfg
	if c.swaggerOn {
		t.Fatal("swaggerOn must start false")
	}
	WithSwagger(true)(&c)
	if !c.swaggerOn {
		t.Fatal("WithSwagger(true) did not stick")
	}
	WithSwagger(false)(&c)
	if c.swaggerOn {
		t.Fatal("WithSwagger(false) did not clear the flag")
	}
}

// tagMw builds a middleware that records its tag when the chain runs.
func tagMw(trace *[]string, tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trace = append(*trace, tag)
			if next != nil {
				next.ServeHTTP(w, r)
			}
		})
	}
}

func TestWithMiddlewaresAccumulates(t *testing.T) {
	t.Parallel()

	var trace []string
	var c buildCfg

	// two calls append, they do not replace
	WithMiddlewares(tagMw(&trace, "auth"), tagMw(&trace, "accesslog"))(&c)
	WithMiddlewares(tagMw(&trace, "recover"))(&c)

	if len(c.mw) != 3 {
		t.Fatalf("got %d middlewares, want 3", len(c.mw))
	}

	// wrap innermost-last so the first registered runs first
	var h http.Handler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for i := len(c.mw) - 1; i >= 0; i-- {
		h = c.mw[i](h)
	}
	h.ServeHTTP(nil, nil)

	want := []string{"auth", "accesslog", "recover"}
	if len(trace) != len(want) {
		t.Fatalf("chain ran %d middlewares, want %d", len(trace), len(want))
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("position %d: ran %q, want %q", i, trace[i], want[i])
		}
	}
}

func TestWithPortsKeepsConcreteType(t *testing.T) {
	t.Parallel()

	type leadPorts struct {
		Runner  string
		Workers int
	}

	var c buildCfg
	WithPorts(leadPorts{Runner: "export", Workers: 4})(&c)

	got, ok := c.ports.(leadPorts)
	if !ok {
		t.Fatalf("ports stored as %T, want leadPorts", c.ports)
	}
	if got.Runner != "export" || got.Workers != 4 {
		t.Fatalf("ports value = %+v", got)
	}
}

func TestWithSubrouter(t *testing.T) {
	t.Parallel()

	var seen phttp.Router
	calls := 0

	var c buildCfg
	WithSubrouter(func(r phttp.Router) phttp.Router {
		calls++
		seen = r
		return r
	})(&c)

	if c.subrouter == nil {
		t.Fatal("subrouter not stored")
	}

	var r phttp.Router
	out := c.subrouter(r)

	if calls != 1 {
		t.Fatalf("factory ran %d times, want 1", calls)
	}
	if seen != r || out != r {
		t.Fatalf("factory should receive and return the same router: seen=%v out=%v", seen, out)
	}
}

func TestWithRegister(t *testing.T) {
	t.Parallel()

	var seen phttp.Router
	calls := 0

	var c buildCfg
	WithRegister(func(r phttp.Router) {
		calls++
		seen = r
	})(&c)

	if c.register == nil {
		t.Fatal("register not stored")
	}

	var r phttp.Router
	c.register(r)

	if calls != 1 {
		t.Fatalf("register ran %d times, want 1", calls)
	}
	if seen != r {
		t.Fatal("register did not receive the mounted router")
	}
}

func TestOptionsCompose(t *testing.T) {
	t.Parallel()

	var trace []string
	opts := []Option{
		WithName("audiences"),
		WithPrefix("/audiences"),
		WithSwagger(true),
		WithMiddlewares(tagMw(&trace, "bearer")),
		WithPorts(map[string]bool{"directory": true}),
	}

	var c buildCfg
	for _, opt := range opts {
		opt(&c)
	}

	if c.name != "audiences" || c.prefix != "/audiences" || !c.swaggerOn {
		t.Fatalf("composed cfg = %+v", c)
	}
	if len(c.mw) != 1 {
		t.Fatalf("got %d middlewares, want 1", len(c.mw))
	}
	if _, ok := c.ports.(map[string]bool); !ok {
		t.Fatalf("ports stored as %T, want map[string]bool", c.ports)
	}
}
