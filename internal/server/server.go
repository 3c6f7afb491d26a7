package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/exemplo/appserver/internal/version"
)

type Server struct {
	config    *Config
	server    *http.Server
	listener  net.Listener
	startedAt time.Time
}

func New(config *Config, svc *Services) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpHandler, err := SetupRoutes(config, svc)
	if err != nil {
		return nil, fmt.Errorf("setup routes: %w", err)
	}

	return &Server{
		config: config,
		server: &http.Server{
			Addr:              config.HTTP.Addr(),
			Handler:           httpHandler,
			ReadHeaderTimeout: config.HTTP.ReadHeaderTimeout,
			IdleTimeout:       config.HTTP.IdleTimeout,
		},
	}, nil
}

// Listen binds the TCP listener and marks the start of uptime. Start calls
// it when needed; calling it first surfaces bind errors early and makes Addr
// available.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	}
	s.listener = ln
	s.startedAt = time.Now()
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Start serves until ctx is cancelled, the listener fails or Stop is called.
// On ctx cancellation the server is shut down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	slog.Info("server start", "addr", s.Addr(), "tls", s.config.HTTP.TLSEnabled(), "version", version.Get().Short())
	defer slog.Info("server stop")

	eg, egCtx := errgroup.WithContext(ctx)

	served := make(chan struct{})

	eg.Go(func() error {
		defer close(served)
		if err := s.serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		select {
		case <-egCtx.Done():
			return s.Stop(context.Background())
		case <-served:
			// serve returned on its own, e.g. after Stop
			return nil
		}
	})

	return eg.Wait()
}

func (s *Server) Stop(ctx context.Context) error {
	timeout := s.config.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if s.startedAt.IsZero() {
		slog.Info("server shutdown")
	} else {
		slog.Info("server shutdown", "uptime", time.Since(s.startedAt).Round(time.Second))
	}
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) serve() error {
	if s.config.HTTP.TLSEnabled() {
		return s.server.ServeTLS(s.listener, s.config.HTTP.CertFile, s.config.HTTP.KeyFile)
	}
	return s.server.Serve(s.listener)
}
