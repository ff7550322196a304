// Package server exposes the scanner and verse resolver over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/versetip/internal/focus"
	"github.com/hyperifyio/versetip/internal/verse"
)

// DefaultMaxBody caps request bodies for scan and annotate when
// Config.MaxBody is zero.
const DefaultMaxBody = 4 << 20

// Config configures a Server.
type Config struct {
	Resolver *verse.Resolver
	// ContextVersion is the translation used for full-context links.
	ContextVersion string
	// Interlinear adds data-interlinear to annotated spans.
	Interlinear bool
	// MaxBody limits scan and annotate bodies. Zero means DefaultMaxBody.
	MaxBody int64
}

// Server serves the JSON API.
type Server struct {
	cfg     Config
	clients focus.Registry
}

// New returns a server for cfg. A nil Resolver is an error.
func New(cfg Config) (*Server, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("server: resolver is required")
	}
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBody
	}
	return &Server{cfg: cfg}, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/scan", s.handleScan)
	mux.HandleFunc("POST /api/annotate", s.handleAnnotate)
	mux.HandleFunc("GET /api/verse", s.handleVerse)
	mux.HandleFunc("GET /api/tooltip", s.handleTooltip)
	mux.HandleFunc("GET /api/interlinear", s.handleInterlinear)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	var h http.Handler = mux
	h = recoveryMiddleware(h)
	h = logMiddleware(h)
	return requestIDMiddleware(h)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
