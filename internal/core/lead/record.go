// Package lead defines the in-memory lead record model and the column
// catalog of the vendor feed. A record is an ordered field-name -> value
// mapping; field order is insertion order so CSV round-trips keep their shape
package lead

// Field is a single named column value
type Field struct {
	Name  string
	Value string
}

// Record holds a lead's fields in insertion order.
// The zero value is an empty record ready for use
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord returns a record with capacity for n fields
func NewRecord(n int) Record {
	return Record{
		fields: make([]Field, 0, n),
		index:  make(map[string]int, n),
	}
}

// FromPairs builds a record from name/value pairs in order.
// Later duplicates overwrite earlier values in place
func FromPairs(pairs ...string) Record {
	r := NewRecord(len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set stores a value, appending the field when the name is new
func (r *Record) Set(name, value string) {
	if r.index == nil {
		r.index = make(map[string]int, 8)
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Get returns the value and whether the field exists
func (r Record) Get(name string) (string, bool) {
	if r.index == nil {
		return "", false
	}
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Value returns the value or empty string when the field is absent
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Has reports whether the field exists
func (r Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Delete removes a field, preserving the order of the rest
func (r *Record) Delete(name string) {
	if r.index == nil {
		return
	}
	i, ok := r.index[name]
	if !ok {
		return
	}
	r.fields = append(r.fields[:i], r.fields[i+1:]...)
	delete(r.index, name)
	for j := i; j < len(r.fields); j++ {
		r.index[r.fields[j].Name] = j
	}
}

// Len returns the number of fields
func (r Record) Len() int { return len(r.fields) }

// Names returns the field names in order
func (r Record) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	return out
}

// Fields returns a copy of the ordered fields
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Clone returns an independent copy
func (r Record) Clone() Record {
	c := NewRecord(len(r.fields))
	for _, f := range r.fields {
		c.Set(f.Name, f.Value)
	}
	return c
}
