// Package domain defines the push module's types and ports
package domain

import (
	"errors"

	"leadhopper/internal/core/tagmap"
)

// ErrPartial marks a run that finished with some members failed.
// The Summary returned alongside is still whole and carries the detail
var ErrPartial = errors.New("some members failed")

// PushInput carries per-run options. Zero fields fall back to the
// service defaults built from config
type PushInput struct {
	// ListID is the target audience. Required unless DryRun
	ListID string

	// Encoding names the input charset; empty sniffs the BOM
	Encoding string

	// EmailColumns are the input columns fanned out into one member per email
	EmailColumns []string

	// Delimiters are the characters multi-value cells split on
	Delimiters string

	// Dedupe drops repeated emails after the first, case-folded.
	// Pushing the same address twice in one run only rewrites its tags
	Dedupe bool

	// Mapping enables tag derivation when set
	Mapping *tagmap.Mapping

	// Tagger names the tagging strategy, standard or priority
	Tagger string

	// Strict fails the run when a category value has no mapping entry
	Strict bool

	// ExtraTags are applied to every pushed member on top of mapped tags
	ExtraTags []string

	// DryRun walks the whole pipeline without calling the API
	DryRun bool
}

// MemberInput is one member ready to write
type MemberInput struct {
	Email     string
	FirstName string
	LastName  string
}

// Failure records one member that could not be written
type Failure struct {
	// Seq is the 1-based ordinal of the record in the normalized stream
	Seq   int    `json:"seq"`
	Email string `json:"email"`

	// Stage is member or tags, whichever call failed
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// Failure stages
const (
	StageMember = "member"
	StageTags   = "tags"
)

// Summary reports what one push run did
type Summary struct {
	RunID  string `json:"run_id"`
	ListID string `json:"list_id"`
	DryRun bool   `json:"dry_run"`

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

	// Write side
	Pushed int `json:"pushed"`
	Failed int `json:"failed"`

	// Failures holds the first failures up to the configured cap;
	// Failed keeps the true total
	Failures []Failure `json:"failures,omitempty"`

	ElapsedMS int `json:"elapsed_ms"`
}

// Audience is a Mailchimp list summary
type Audience struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Members int    `json:"members"`
}
