// Package version exposes build metadata stamped in at link time
package version

import (
	"fmt"
	"runtime"
)

// Overridden through -ldflags:
//
//	-X leadhopper/internal/core/version.version=v0.2.0
//	-X leadhopper/internal/core/version.commit=4f9c21b
//	-X leadhopper/internal/core/version.date=2026-08-23
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the shape /version serves
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info returns the stamped build metadata
func Info() BuildInfo {
	return BuildInfo{
		Service: "leadhopper",
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
}

// String renders the one-line form the CLIs print for -version
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (%s, %s, %s)", b.Service, b.Version, b.Commit, b.Date, b.Go)
}
