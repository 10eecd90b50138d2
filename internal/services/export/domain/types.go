// Package domain defines the export module's types and ports
package domain

import "leadhopper/internal/core/tagmap"

// RunInput carries per-run options. Zero fields fall back to the
// service defaults built from config
type RunInput struct {
	// Encoding names the input charset; empty sniffs the BOM
	Encoding string

	// EmailColumns are the input columns fanned out into one row per email
	EmailColumns []string

	// Delimiters are the characters multi-value cells split on
	Delimiters string

	// ExcludeNoEmail drops leads that carry no email at all
	ExcludeNoEmail bool

	// Dedupe drops repeated emails after the first, case-folded
	Dedupe bool

	// Mapping enables tagging when set
	Mapping *tagmap.Mapping

	// Tagger names the tagging strategy, standard or priority
	Tagger string

	// Strict fails the run when a category value has no mapping entry
	Strict bool
}

// Summary reports what one run did
type Summary struct {
	RunID string `json:"run_id"`

	// Input side
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`

	// Normalization
	Emitted int `json:"emitted"`
	NoEmail int `json:"no_email"`
	Deduped int `json:"deduped"`

	// Tagging; zero when no mapping was configured
	Tagged   int `json:"tagged"`
	Untagged int `json:"untagged"`
	Misses   int `json:"misses"`

	Columns   []string `json:"columns"`
	ElapsedMS int      `json:"elapsed_ms"`
}

// Preview is a bounded sample of the output for inspection before a run.
// The whole input is consumed, so the summary covers the file rather
// than the sampled rows
type Preview struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Truncated bool       `json:"truncated"`
	Summary   Summary    `json:"summary"`
}
