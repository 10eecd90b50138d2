// @title         Leadhopper API
// @version       0.1.0
// @description   Lead normalization, tagging and Mailchimp delivery

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leadhopper/internal/adapters/mailchimp"
	"leadhopper/internal/platform/config"
	"leadhopper/internal/platform/logger"
	phttp "leadhopper/internal/platform/net/http"

	"leadhopper/internal/services/api"
)

func main() {
	config.LoadDotenv()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// the mailchimp client is optional; without a key the API still
	// serves file runs and previews
	var chimp *mailchimp.Client
	if mcOpts := mailchimp.FromConfig(root); mcOpts.APIKey != "" {
		c, err := mailchimp.New(mcOpts)
		if err != nil {
			l.Panic().Err(err).Msg("mailchimp client")
		}
		chimp = c
	} else {
		l.Warn().Msg("SERVICE_MAILCHIMP_API_KEY not set; push and audience endpoints disabled")
	}

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			Chimp:          chimp,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run until interrupted; Run drains on signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
