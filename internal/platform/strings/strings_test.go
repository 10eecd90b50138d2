package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	in := []int{1, 2, 3}
	if got := IfEmpty(in, []int{9}); len(got) != 3 || got[0] != 1 {
		t.Fatalf("IfEmpty replaced a populated slice: %#v", got)
	}

	var empty []string
	if got := IfEmpty(empty, []string{"GET"}); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("IfEmpty did not fall back: %#v", got)
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s, sub string
		want   bool
	}{
		{"a@b.co", "@", true},
		{"leadhopper", "lead", true},
		{"leadhopper", "hopper", true},
		{"leadhopper", "", true},
		{"leadhopper", "chimp", false},
		{"us7", "us21", false},
	}
	for _, c := range cases {
		if got := Contains(c.s, c.sub); got != c.want {
			t.Errorf("Contains(%q,%q)=%v want %v", c.s, c.sub, got, c.want)
		}
	}
}

func TestHasSuffix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		s, suf string
		want   bool
	}{
		{"leads.csv.gz", ".gz", true},
		{"leads.csv", ".csv", true},
		{"leads.csv", ".gz", false},
		{"a", "longer", false},
		{"leads", "", true},
	}
	for _, c := range cases {
		if got := HasSuffix(c.s, c.suf); got != c.want {
			t.Errorf("HasSuffix(%q,%q)=%v want %v", c.s, c.suf, got, c.want)
		}
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString("push", "module name"); got != "push" {
		t.Fatalf("want push got %q", got)
	}

	defer func() {
		v := recover()
		if v == nil {
			t.Fatal("want panic for blank value")
		}
		if s, ok := v.(string); !ok || s != "module name is required" {
			t.Fatalf("panic = %v", v)
		}
	}()
	_ = MustString("   ", "module name")
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/leads/":   "/leads",
		" leads  ":  "/leads",
		"//leads//": "/leads",
		"/":         "", // panics
		"":          "", // panics
	}
	for in, want := range cases {
		if want == "" {
			func() {
				defer func() {
					if recover() == nil {
						t.Fatalf("want panic for %q", in)
					}
				}()
				_ = MustPrefix(in)
			}()
			continue
		}
		if got := MustPrefix(in); got != want {
			t.Fatalf("in %q want %q got %q", in, want, got)
		}
	}
}
