package module

import (
	"leadhopper/internal/platform/config"
)

// Options holds configuration for the push service
type Options struct {
	Workers      int
	FailureCap   int
	ListID       string
	Encoding     string
	EmailColumns []string
	Delimiters   string
	Dedupe       bool
	MappingPath  string
	Tagger       string
	Strict       bool
	ExtraTags    []string
	DryRun       bool
}

// FromConfig reads the push options from config with CORE_PUSH_ prefix
func FromConfig(cfg config.Conf) Options {
	p := cfg.Prefix("CORE_PUSH_")
	return Options{
		Workers:      p.MayInt("WORKERS", 4),
		FailureCap:   p.MayInt("FAILURE_CAP", 100),
		ListID:       p.MayString("LIST", ""),
		Encoding:     p.MayString("ENCODING", ""),
		EmailColumns: p.MayCSV("EMAIL_COLUMNS", nil),
		Delimiters:   p.MayString("DELIMITERS", ";,"),
		Dedupe:       p.MayBool("DEDUPE", true),
		MappingPath:  p.MayString("MAPPING", ""),
		Tagger:       p.MayString("TAGGER", "standard"),
		Strict:       p.MayBool("STRICT", false),
		ExtraTags:    p.MayCSV("EXTRA_TAGS", nil),
		DryRun:       p.MayBool("DRY_RUN", false),
	}
}
