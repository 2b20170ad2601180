// Package server hosts the sign-in flow over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bouncerio/bouncer-login/internal/auth"
	"github.com/bouncerio/bouncer-login/internal/config"
	"github.com/bouncerio/bouncer-login/internal/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second

	readHeaderTimeout = 5 * time.Second
)

// Server represents the HTTP server hosting the sign-in flow.
type Server struct {
	config *config.Config
	auth   *auth.Service
	http   *http.Server
}

// NewServer creates a new server with the flow routes mounted.
func NewServer(cfg *config.Config, authService *auth.Service) *Server {
	s := &Server{
		config: cfg,
		auth:   authService,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// router assembles the chi router with the middleware stack.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logging)
	s.auth.RegisterRoutes(r)
	return r
}

// Start binds the listener and begins serving in the background. It returns
// once the listener is bound, so a busy port fails startup immediately.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}

	logger.Info("Starting server",
		zap.String("address", s.http.Addr),
		zap.String("callback_url", s.config.CallbackURL()),
	)

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("Shutting down server", zap.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// Module provides the HTTP server dependencies
var Module = fx.Module("server",
	fx.Provide(
		NewServer,
	),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.Stop,
	})
}
