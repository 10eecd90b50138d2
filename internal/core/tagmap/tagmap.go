// Package tagmap loads and validates the tag-mapping document that turns
// intent signals on a lead into Mailchimp tags. A mapping is parsed once,
// validated at load, and immutable afterwards; taggers consume it per run
package tagmap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"leadhopper/internal/core/lead"
)

// Mode selects how mapping keys are matched against a lead
type Mode string

const (
	// ModeCategory keys the mapping by intent-category VALUES; the designated
	// category column is read per record and looked up
	ModeCategory Mode = "category"

	// ModeColumns keys the mapping by intent COLUMN names; every mapped
	// column with a non-empty value on the record contributes its tags
	ModeColumns Mode = "columns"
)

// Mailchimp caps tag names at 100 characters
const maxTagLen = 100

// Rule is one mapping entry in document order
type Rule struct {
	Key  string
	Tags []string
}

// Mapping is a compiled tag-mapping document
type Mapping struct {
	mode     Mode
	catCol   string
	rules    []Rule
	index    map[string]int // folded key -> rules offset
	priority []string
}

// rawMapping mirrors the YAML document. Tags stays a yaml.Node so the
// document order of the rules survives decoding (Go maps would shuffle it)
type rawMapping struct {
	Mode           string    `yaml:"mode"`
	CategoryColumn string    `yaml:"category_column"`
	Tags           yaml.Node `yaml:"tags"`
	Priority       []string  `yaml:"priority"`
}

// Load reads and parses a mapping document from path
func Load(path string) (*Mapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tagmap: read %s: %w", path, err)
	}
	m, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("tagmap: %s: %w", path, err)
	}
	return m, nil
}

// Parse builds a Mapping from YAML bytes. JSON bodies parse too since YAML
// is a superset, which lets API callers submit inline mappings
func Parse(b []byte) (*Mapping, error) {
	var raw rawMapping
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("tagmap: parse mapping: %w", err)
	}

	m := &Mapping{
		mode:   ModeCategory,
		catCol: lead.FieldIntentCategory,
		index:  make(map[string]int, 16),
	}

	switch strings.ToLower(strings.TrimSpace(raw.Mode)) {
	case "", string(ModeCategory):
		m.mode = ModeCategory
	case string(ModeColumns):
		m.mode = ModeColumns
	default:
		return nil, fmt.Errorf("tagmap: unsupported mode %q (want category or columns)", raw.Mode)
	}

	if c := strings.TrimSpace(raw.CategoryColumn); c != "" {
		m.catCol = c
	}

	if raw.Tags.Kind == 0 {
		return nil, fmt.Errorf("tagmap: mapping has no tags block")
	}
	if raw.Tags.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("tagmap: tags must be a mapping of key to tag(s)")
	}

	// Walk key/value node pairs so rules keep their document order
	for i := 0; i+1 < len(raw.Tags.Content); i += 2 {
		keyNode, valNode := raw.Tags.Content[i], raw.Tags.Content[i+1]

		key := strings.TrimSpace(keyNode.Value)
		if key == "" {
			return nil, fmt.Errorf("tagmap: empty mapping key at line %d", keyNode.Line)
		}
		folded := fold(key)
		if _, dup := m.index[folded]; dup {
			return nil, fmt.Errorf("tagmap: duplicate mapping key %q", key)
		}

		tags, err := decodeTags(valNode)
		if err != nil {
			return nil, fmt.Errorf("tagmap: key %q: %w", key, err)
		}
		if len(tags) == 0 {
			return nil, fmt.Errorf("tagmap: key %q maps to no tags", key)
		}
		for _, tag := range tags {
			if len(tag) > maxTagLen {
				return nil, fmt.Errorf("tagmap: key %q: tag %q exceeds %d characters", key, tag, maxTagLen)
			}
		}

		m.index[folded] = len(m.rules)
		m.rules = append(m.rules, Rule{Key: key, Tags: tags})
	}
	if len(m.rules) == 0 {
		return nil, fmt.Errorf("tagmap: mapping has no tag rules")
	}

	seen := make(map[string]struct{}, len(raw.Priority))
	for _, p := range raw.Priority {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("tagmap: empty entry in priority list")
		}
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("tagmap: duplicate priority entry %q", p)
		}
		seen[p] = struct{}{}
		m.priority = append(m.priority, p)
	}

	return m, nil
}

// decodeTags accepts a scalar ("Buyer" or "Buyer, Seller") or a sequence
func decodeTags(n *yaml.Node) ([]string, error) {
	var parts []string
	switch n.Kind {
	case yaml.ScalarNode:
		parts = strings.Split(n.Value, ",")
	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return nil, err
		}
		parts = list
	default:
		return nil, fmt.Errorf("tags must be a string or a list at line %d", n.Line)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Mode returns the match mode
func (m *Mapping) Mode() Mode { return m.mode }

// CategoryColumn returns the column read in category mode
func (m *Mapping) CategoryColumn() string { return m.catCol }

// Len returns the number of rules
func (m *Mapping) Len() int { return len(m.rules) }

// Rules returns the rules in document order
func (m *Mapping) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Priority returns the configured priority list, empty when absent
func (m *Mapping) Priority() []string {
	out := make([]string, len(m.priority))
	copy(out, m.priority)
	return out
}

// Lookup returns the tags for a key, matching case-insensitively
func (m *Mapping) Lookup(key string) ([]string, bool) {
	i, ok := m.index[fold(key)]
	if !ok {
		return nil, false
	}
	tags := make([]string, len(m.rules[i].Tags))
	copy(tags, m.rules[i].Tags)
	return tags, true
}

// match collects the tags a record earns, deduplicated in rule order.
// miss carries the category value when it had no mapping entry (category
// mode only; columns mode cannot miss — unmapped columns are simply not rules)
func (m *Mapping) match(r lead.Record) (tags []string, miss string) {
	switch m.mode {
	case ModeColumns:
		seen := make(map[string]struct{}, 8)
		for _, rule := range m.rules {
			v, ok := r.Get(rule.Key)
			if !ok || strings.TrimSpace(v) == "" {
				continue
			}
			for _, t := range rule.Tags {
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
		return tags, ""

	default: // ModeCategory
		v := strings.TrimSpace(r.Value(m.catCol))
		if v == "" {
			return nil, ""
		}
		found, ok := m.Lookup(v)
		if !ok {
			return nil, v
		}
		return found, ""
	}
}

// Join renders a tag list the way the export CSV carries it
func Join(tags []string) string { return strings.Join(tags, ", ") }
