package lead

import (
	"reflect"
	"testing"
)

func TestRecordSetGetOrder(t *testing.T) {
	r := NewRecord(4)
	r.Set("first_name", "Ada")
	r.Set("last_name", "Lovelace")
	r.Set("city", "London")

	if got := r.Value("first_name"); got != "Ada" {
		t.Fatalf("Value(first_name) = %q, want Ada", got)
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("Get(missing) should report ok=false")
	}
	if r.Value("missing") != "" {
		t.Fatalf("Value(missing) should be empty")
	}
	if !r.Has("city") || r.Has("zip") {
		t.Fatalf("Has misfired")
	}

	// overwrite keeps position
	r.Set("last_name", "King")
	want := []string{"first_name", "last_name", "city"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	if got := r.Value("last_name"); got != "King" {
		t.Fatalf("overwrite failed, got %q", got)
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
}

func TestRecordDelete(t *testing.T) {
	r := FromPairs("a", "1", "b", "2", "c", "3", "d", "4")
	r.Delete("b")

	want := []string{"a", "c", "d"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names after delete = %v, want %v", got, want)
	}
	// index stays consistent after the shift
	if got := r.Value("d"); got != "4" {
		t.Fatalf("Value(d) after delete = %q, want 4", got)
	}
	// deleting a missing field is a no-op
	r.Delete("zz")
	if r.Len() != 3 {
		t.Fatalf("Len after no-op delete = %d, want 3", r.Len())
	}

	// re-adding a deleted field appends at the end
	r.Set("b", "9")
	if got := r.Names(); !reflect.DeepEqual(got, []string{"a", "c", "d", "b"}) {
		t.Fatalf("Names after re-add = %v", got)
	}
}

func TestRecordCloneIsIndependent(t *testing.T) {
	r := FromPairs("email", "a@x.com", "city", "Tulsa")
	c := r.Clone()
	c.Set("city", "Austin")
	c.Set("state", "TX")

	if got := r.Value("city"); got != "Tulsa" {
		t.Fatalf("clone mutated original: city = %q", got)
	}
	if r.Has("state") {
		t.Fatalf("clone mutated original: state present")
	}
	if got := c.Value("city"); got != "Austin" {
		t.Fatalf("clone value = %q, want Austin", got)
	}
}

func TestZeroRecordIsUsable(t *testing.T) {
	var r Record
	if r.Len() != 0 || r.Has("x") || r.Value("x") != "" {
		t.Fatalf("zero record should be empty")
	}
	r.Delete("x") // no-op, must not panic
	r.Set("x", "1")
	if got := r.Value("x"); got != "1" {
		t.Fatalf("Set on zero record failed, got %q", got)
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	r := FromPairs("a", "1")
	fs := r.Fields()
	fs[0].Value = "mutated"
	if got := r.Value("a"); got != "1" {
		t.Fatalf("Fields leaked internal storage, got %q", got)
	}
}
