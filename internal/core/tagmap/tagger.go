package tagmap

import (
	"fmt"
	"strings"

	"leadhopper/internal/core/lead"
)

// Tagger derives the tag list for one lead record.
// Implementations are not safe for concurrent use; tag on the producer side
type Tagger interface {
	// Tags returns the tags for r in output order
	Tags(r lead.Record) ([]string, error)

	// Stats reports counters accumulated since construction
	Stats() Stats
}

// Stats counts tagging outcomes across a run
type Stats struct {
	// Tagged is the number of records that earned at least one tag
	Tagged int

	// Untagged is the number of records that earned none
	Untagged int

	// Misses is the number of records whose category value had no
	// mapping entry (category mode; counted even when not strict)
	Misses int
}

// Config carries per-run tagger options
type Config struct {
	// Strict makes an unmapped non-empty category value an error
	// instead of an untagged record
	Strict bool
}

// New builds the named tagger over m. Empty name selects standard
func New(name string, m *Mapping, cfg Config) (Tagger, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard":
		return NewStandard(m, cfg), nil
	case "priority":
		return NewPriority(m, cfg)
	default:
		return nil, fmt.Errorf("tagmap: unknown tagger %q (want standard or priority)", name)
	}
}

// Standard emits every tag a record earns, deduplicated in mapping order
type Standard struct {
	m     *Mapping
	cfg   Config
	stats Stats
}

// NewStandard builds a standard tagger over m
func NewStandard(m *Mapping, cfg Config) *Standard {
	return &Standard{m: m, cfg: cfg}
}

// Tags implements Tagger
func (s *Standard) Tags(r lead.Record) ([]string, error) {
	tags, miss := s.m.match(r)
	if miss != "" {
		s.stats.Misses++
		if s.cfg.Strict {
			return nil, fmt.Errorf("tagmap: unmapped category %q", miss)
		}
	}
	if len(tags) == 0 {
		s.stats.Untagged++
		return nil, nil
	}
	s.stats.Tagged++
	return tags, nil
}

// Stats implements Tagger
func (s *Standard) Stats() Stats { return s.stats }

// Priority emits at most one tag per record: of the tags the record earned,
// the one ranked highest in the mapping's priority list
type Priority struct {
	m     *Mapping
	cfg   Config
	rank  map[string]int
	stats Stats
}

// NewPriority builds a priority tagger over m. Every tag the mapping can
// emit must appear in the priority list, so the winner is always defined
func NewPriority(m *Mapping, cfg Config) (*Priority, error) {
	prio := m.Priority()
	if len(prio) == 0 {
		return nil, fmt.Errorf("tagmap: priority tagger needs a priority list")
	}

	rank := make(map[string]int, len(prio))
	for i, t := range prio {
		rank[t] = i
	}
	for _, rule := range m.Rules() {
		for _, t := range rule.Tags {
			if _, ok := rank[t]; !ok {
				return nil, fmt.Errorf("tagmap: tag %q (key %q) missing from priority list", t, rule.Key)
			}
		}
	}

	return &Priority{m: m, cfg: cfg, rank: rank}, nil
}

// Tags implements Tagger
func (p *Priority) Tags(r lead.Record) ([]string, error) {
	tags, miss := p.m.match(r)
	if miss != "" {
		p.stats.Misses++
		if p.cfg.Strict {
			return nil, fmt.Errorf("tagmap: unmapped category %q", miss)
		}
	}
	if len(tags) == 0 {
		p.stats.Untagged++
		return nil, nil
	}

	best := tags[0]
	for _, t := range tags[1:] {
		if p.rank[t] < p.rank[best] {
			best = t
		}
	}
	p.stats.Tagged++
	return []string{best}, nil
}

// Stats implements Tagger
func (p *Priority) Stats() Stats { return p.stats }
