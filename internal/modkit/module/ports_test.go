package module

import (
	"testing"

	pstrings "leadhopper/internal/platform/strings"

	"leadhopper/internal/modkit/httpkit"
)

// counterPort stands in for the service ports real modules expose
type counterPort interface {
	Count() int
}

type fixedCounter struct{ n int }

func (c fixedCounter) Count() int { return c.n }

type portModule struct {
	name  string
	ports any
}

func (m portModule) Name() string               { return m.name }
func (m portModule) Ports() PortSet             { return m.ports }
func (m portModule) MountRoutes(httpkit.Router) {}

func TestPortsOfNilBundle(t *testing.T) {
	t.Parallel()

	m := portModule{name: "empty"}
	if _, ok := PortsOf[counterPort](m); ok {
		t.Fatal("nil bundle must miss")
	}
}

func TestPortsOfDirectMatch(t *testing.T) {
	t.Parallel()

	m := portModule{name: "export", ports: counterPort(fixedCounter{n: 41})}

	got, ok := PortsOf[counterPort](m)
	if !ok {
		t.Fatal("direct interface bundle must match")
	}
	if got.Count() != 41 {
		t.Fatalf("Count() = %d, want 41", got.Count())
	}
}

func TestPortsOfWalksExportedFields(t *testing.T) {
	t.Parallel()

	type bundle struct {
		Rows    int
		Counter counterPort
	}
	m := portModule{name: "push", ports: bundle{Rows: 2, Counter: fixedCounter{n: 8}}}

	got, ok := PortsOf[counterPort](m)
	if !ok {
		t.Fatal("exported struct field must match")
	}
	if got.Count() != 8 {
		t.Fatalf("Count() = %d, want 8", got.Count())
	}
}

func TestPortsOfSkipsUnexportedFields(t *testing.T) {
	t.Parallel()

	type bundle struct {
		counter counterPort
		rows    int
	}
	m := portModule{name: "hidden", ports: bundle{counter: fixedCounter{n: 1}, rows: 2}}

	if _, ok := PortsOf[counterPort](m); ok {
		t.Fatal("unexported fields must not be reachable")
	}
}

func TestPortsOfNonStructBundle(t *testing.T) {
	t.Parallel()

	m := portModule{name: "scalar", ports: 12}
	if _, ok := PortsOf[counterPort](m); ok {
		t.Fatal("non-struct bundle without a direct match must miss")
	}
}

func TestMustPortsOfNamesTheModule(t *testing.T) {
	t.Parallel()

	m := portModule{name: "audiences"}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("missing port must panic")
		}
		msg, _ := r.(string)
		if !pstrings.Contains(msg, "audiences") || !pstrings.Contains(msg, "requested port not found") {
			t.Fatalf("panic message %q should carry the module name", msg)
		}
	}()

	_ = MustPortsOf[counterPort](m)
}

func TestMustPortsOfReturnsMatch(t *testing.T) {
	t.Parallel()

	m := portModule{name: "meta", ports: counterPort(fixedCounter{n: 3})}

	got := MustPortsOf[counterPort](m)
	if got.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", got.Count())
	}
}
