// Package api provides the HTTP API for the application
package api

import (
	"leadhopper/internal/adapters/mailchimp"
	"leadhopper/internal/platform/config"
	"leadhopper/internal/platform/logger"
	phttp "leadhopper/internal/platform/net/http"

	"leadhopper/internal/modkit"
	"leadhopper/internal/modkit/httpkit"
	"leadhopper/internal/modkit/module"
	"leadhopper/internal/modkit/swaggerkit"

	audiencesmod "leadhopper/internal/services/api/audiences/module"
	apileads "leadhopper/internal/services/api/leads/module"
	metamod "leadhopper/internal/services/api/meta/module"
	apipush "leadhopper/internal/services/api/push/module"

	// Worker modules (own the Runner, Pusher and Directory ports)
	exportworker "leadhopper/internal/services/export/module"
	pushworker "leadhopper/internal/services/push/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger

	// Chimp is nil when no API key is configured; Mailchimp-backed
	// endpoints then answer 503 and runs are limited to dry mode
	Chimp *mailchimp.Client

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		Chimp: opt.Chimp,
	}

	// Construct the WORKER modules first and extract their ports
	exportWorker := exportworker.New(deps)
	runner := module.MustPortsOf[exportworker.Ports](exportWorker).Runner

	pushWorker := pushworker.New(deps)
	pushPorts := module.MustPortsOf[pushworker.Ports](pushWorker)

	// Inject the worker ports into the API-facing modules
	leads := apileads.New(deps, modkit.WithPorts(apileads.Ports{Runner: runner}))
	audiences := audiencesmod.New(deps, modkit.WithPorts(audiencesmod.Ports{Directory: pushPorts.Directory}))
	push := apipush.New(deps, modkit.WithPorts(apipush.Ports{Pusher: pushPorts.Pusher}))

	// meta and workers mount openly; meta keeps probes reachable
	open := []module.Module{
		metamod.New(deps),
		exportWorker, // include workers so their ports are registered
		pushWorker,
	}
	guarded := []module.Module{leads, audiences, push}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range open {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}

		mountGuarded := func(sub httpkit.Router) {
			for _, m := range guarded {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(sub)
			}
		}

		// Optional static bearer auth on everything except meta
		if tok := opt.Config.Prefix("CORE_API_").MayString("AUTH_TOKEN", ""); tok != "" {
			httpkit.Protected(api, httpkit.NewStaticToken(tok, "api"), mountGuarded)
		} else {
			mountGuarded(api)
		}
	})
}
