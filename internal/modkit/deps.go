// Package modkit provides module wiring and core deps
package modkit

import (
	"leadhopper/internal/adapters/mailchimp"
	"leadhopper/internal/platform/config"
	"leadhopper/internal/platform/logger"
)

// Deps holds the shared dependencies handed to every module constructor.
// Pure wiring; modules pick what they need and ignore the rest
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// Chimp is nil when no Mailchimp key is configured. Modules that
	// need the API degrade (dry runs, 503s) rather than fail to build
	Chimp *mailchimp.Client
}

// ZeroOK reports that a zero Deps is usable in tests
// consumers still nil check the optional client
func (d Deps) ZeroOK() bool { return true }
