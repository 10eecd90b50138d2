// Package normalize fans multi-email lead records out into one record per
// email address. The stream is lazy and finite: records are pulled from the
// source one lead at a time, and a drained stream cannot be rewound —
// construct a new Stream over a fresh Source to restart a run
package normalize

import (
	"strings"

	"leadhopper/internal/core/lead"
)

// Source yields lead records. Next returns io.EOF when the input drains
type Source interface {
	Next() (lead.Record, error)
	Close() error
}

// Options configure the fan-out
type Options struct {
	// EmailColumns are the input columns scanned for addresses.
	// Defaults to the vendor feed's email_1..email_3
	EmailColumns []string

	// Delimiters are the characters that split multiple addresses inside a
	// single field. Defaults to ";," with surrounding whitespace trimmed
	Delimiters string

	// ExcludeNoEmail drops leads with zero addresses instead of emitting a
	// single record with an empty email field
	ExcludeNoEmail bool

	// Dedupe drops records whose address (case-folded) was already emitted
	// earlier in the stream
	Dedupe bool
}

const defaultDelimiters = ";,"

// Stats counts stream progress
type Stats struct {
	Rows    int // input leads read
	Emitted int // output records produced
	NoEmail int // leads with zero addresses
	Deduped int // duplicate addresses dropped
}

// Stream is a lazy per-email iterator over a Source.
// Not safe for concurrent use
type Stream struct {
	src   Source
	opt   Options
	seen  map[string]struct{}
	queue []lead.Record
	stats Stats
}

// New constructs a Stream with option defaults applied
func New(src Source, opt Options) *Stream {
	if len(opt.EmailColumns) == 0 {
		opt.EmailColumns = lead.DefaultEmailColumns
	}
	if opt.Delimiters == "" {
		opt.Delimiters = defaultDelimiters
	}
	s := &Stream{src: src, opt: opt}
	if opt.Dedupe {
		s.seen = make(map[string]struct{}, 1024)
	}
	return s
}

// Next returns the next per-email record, or io.EOF once the source drains.
// Each returned record carries the lead's non-email fields untouched plus a
// single "email" field holding exactly one address (possibly empty when the
// lead had none and ExcludeNoEmail is off)
func (s *Stream) Next() (lead.Record, error) {
	for {
		if len(s.queue) > 0 {
			out := s.queue[0]
			s.queue = s.queue[1:]
			s.stats.Emitted++
			return out, nil
		}
		in, err := s.src.Next()
		if err != nil {
			return lead.Record{}, err
		}
		s.stats.Rows++
		s.queue = s.fanOut(in)
	}
}

// Close closes the underlying source
func (s *Stream) Close() error { return s.src.Close() }

// Stats returns the counters accumulated so far
func (s *Stream) Stats() Stats { return s.stats }

// fanOut builds the per-email records of one lead
func (s *Stream) fanOut(in lead.Record) []lead.Record {
	emails := s.collect(in)

	base := in.Clone()
	for _, col := range s.opt.EmailColumns {
		base.Delete(col)
	}

	if len(emails) == 0 {
		s.stats.NoEmail++
		if s.opt.ExcludeNoEmail {
			return nil
		}
		// keep the lead, one record with an empty address
		base.Set(lead.FieldEmail, "")
		return []lead.Record{base}
	}

	outs := make([]lead.Record, 0, len(emails))
	for _, e := range emails {
		if s.opt.Dedupe {
			k := strings.ToLower(e)
			if _, dup := s.seen[k]; dup {
				s.stats.Deduped++
				continue
			}
			s.seen[k] = struct{}{}
		}
		out := base.Clone()
		out.Set(lead.FieldEmail, e)
		outs = append(outs, out)
	}
	return outs
}

// collect gathers the lead's addresses in column order, splitting multi-value
// fields on the configured delimiters and trimming whitespace around each part
func (s *Stream) collect(in lead.Record) []string {
	var out []string
	for _, col := range s.opt.EmailColumns {
		v, ok := in.Get(col)
		if !ok {
			continue
		}
		parts := strings.FieldsFunc(v, func(r rune) bool {
			return strings.ContainsRune(s.opt.Delimiters, r)
		})
		for _, p := range parts {
			if e := strings.TrimSpace(p); e != "" {
				out = append(out, e)
			}
		}
	}
	return out
}
