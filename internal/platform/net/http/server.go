package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"leadhopper/internal/platform/config"
	"leadhopper/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server wraps chi and the stdlib http.Server behind one lifecycle
type Server struct {
	addr  string
	drain time.Duration
	mux   *chi.Mux
	srv   *stdhttp.Server
}

// NewServer builds a server on API_PORT under the given config scope.
// opts see the raw chi mux for early middleware setup
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")

	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}

	return &Server{
		addr:  addr,
		drain: cfg.MayDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		mux:   m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router exposes the mux through the platform Router seam
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run serves until the listener fails or ctx is canceled. Cancellation
// drains in-flight requests for up to the configured SHUTDOWN_TIMEOUT;
// a clean drain surfaces as nil
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.addr).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if err == stdhttp.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Dur("drain", s.drain).Msg("shutting down")
		shCtx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()
		if err := s.Shutdown(shCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && err != stdhttp.ErrServerClosed {
			return err
		}
		return nil
	}
}

// Shutdown drains in-flight requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
