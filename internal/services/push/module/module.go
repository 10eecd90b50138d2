// Package module provides the push module implementation
package module

import (
	"fmt"

	"leadhopper/internal/core/tagmap"
	"leadhopper/internal/modkit"
	"leadhopper/internal/modkit/httpkit"
	"leadhopper/internal/services/push/domain"
	"leadhopper/internal/services/push/service"
)

// Ports defines the push module ports
type Ports struct {
	Pusher domain.PusherPort

	// Directory is nil when no mailchimp client is configured
	Directory domain.DirectoryPort
}

// Module implements the push module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the push module. A nil deps.Chimp limits runs to dry mode
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var mapping *tagmap.Mapping
	if opts.MappingPath != "" {
		m, err := tagmap.Load(opts.MappingPath)
		if err != nil {
			panic(fmt.Sprintf("push: load mapping: %v", err))
		}
		mapping = m
	}

	var writer *service.ChimpWriter
	if deps.Chimp != nil {
		writer = service.NewChimpWriter(deps.Chimp)
	}

	svc := service.New(service.Config{
		Workers:      opts.Workers,
		FailureCap:   opts.FailureCap,
		ListID:       opts.ListID,
		Encoding:     opts.Encoding,
		EmailColumns: opts.EmailColumns,
		Delimiters:   opts.Delimiters,
		Dedupe:       opts.Dedupe,
		Tagger:       opts.Tagger,
		Strict:       opts.Strict,
		ExtraTags:    opts.ExtraTags,
		DryRun:       opts.DryRun,
	}, mapping, writerOrNil(writer))

	m := &Module{deps: deps}
	m.ports = Ports{Pusher: svc}
	if writer != nil {
		m.ports.Directory = writer
	}
	return m
}

// writerOrNil keeps a typed nil out of the interface field
func writerOrNil(w *service.ChimpWriter) domain.MemberWriter {
	if w == nil {
		return nil
	}
	return w
}

// Name returns the module name
func (m *Module) Name() string { return "push" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes mounts nothing; the api service owns the push endpoint
func (m *Module) MountRoutes(_ httpkit.Router) {}
