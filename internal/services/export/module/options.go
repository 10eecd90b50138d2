package module

import (
	"leadhopper/internal/platform/config"
)

// Options holds configuration for the export service
type Options struct {
	Encoding       string
	EmailColumns   []string
	Delimiters     string
	ExcludeNoEmail bool
	Dedupe         bool
	MappingPath    string
	Tagger         string
	Strict         bool
}

// FromConfig reads the export options from config with CORE_EXPORT_ prefix
func FromConfig(cfg config.Conf) Options {
	ex := cfg.Prefix("CORE_EXPORT_")
	return Options{
		Encoding:       ex.MayString("ENCODING", ""),
		EmailColumns:   ex.MayCSV("EMAIL_COLUMNS", nil),
		Delimiters:     ex.MayString("DELIMITERS", ";,"),
		ExcludeNoEmail: ex.MayBool("EXCLUDE_NO_EMAIL", false),
		Dedupe:         ex.MayBool("DEDUPE", false),
		MappingPath:    ex.MayString("MAPPING", ""),
		Tagger:         ex.MayString("TAGGER", "standard"),
		Strict:         ex.MayBool("STRICT", false),
	}
}
