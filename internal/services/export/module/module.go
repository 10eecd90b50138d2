// Package module provides the export module implementation
package module

import (
	"fmt"

	"leadhopper/internal/core/tagmap"
	"leadhopper/internal/modkit"
	"leadhopper/internal/modkit/httpkit"
	"leadhopper/internal/services/export/domain"
	"leadhopper/internal/services/export/service"
)

// Ports defines the export module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the export module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the export module, loading the default tag mapping
// from config when one is set
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var mapping *tagmap.Mapping
	if opts.MappingPath != "" {
		m, err := tagmap.Load(opts.MappingPath)
		if err != nil {
			panic(fmt.Sprintf("export: load mapping: %v", err))
		}
		mapping = m
	}

	svc := service.New(service.Config{
		Encoding:       opts.Encoding,
		EmailColumns:   opts.EmailColumns,
		Delimiters:     opts.Delimiters,
		ExcludeNoEmail: opts.ExcludeNoEmail,
		Dedupe:         opts.Dedupe,
		Tagger:         opts.Tagger,
		Strict:         opts.Strict,
	}, mapping)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "export" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes mounts nothing; the worker has no HTTP surface
func (m *Module) MountRoutes(_ httpkit.Router) {}
