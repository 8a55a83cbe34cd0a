package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pizzaria-erp/go-api-server/internal/config"
)

// Server owns the HTTP listener and the resources released after it stops
type Server struct {
	cfg     *config.Config
	server  *http.Server
	closers []func() error
}

func New(cfg *config.Config, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:           fmt.Sprintf(":%d", cfg.App.Port),
			Handler:        handler,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
	}
}

// OnShutdown registers fn to run once in-flight requests have drained,
// in reverse registration order.
func (s *Server) OnShutdown(fn func() error) {
	s.closers = append(s.closers, fn)
}

func (s *Server) Port() int {
	return s.cfg.App.Port
}

func (s *Server) Start() error {
	slog.Info("iniciando servidor",
		"port", s.cfg.App.Port,
		"env", s.cfg.App.Env,
		"read_timeout", s.cfg.Server.ReadTimeout,
		"write_timeout", s.cfg.Server.WriteTimeout,
		"request_timeout", s.cfg.Server.RequestTimeout,
	)

	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for the in-flight ones and then
// runs the shutdown hooks. Hooks run even when draining times out.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http: %w", err))
		}
	}

	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil

	return errors.Join(errs...)
}
