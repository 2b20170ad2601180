package auth

import (
	"github.com/bouncerio/bouncer-login/internal/auth/handlers"
	"github.com/bouncerio/bouncer-login/internal/auth/providers"
	"github.com/bouncerio/bouncer-login/internal/config"
	"github.com/go-chi/chi/v5"
)

// Service represents the sign-in flow service
type Service struct {
	config       *config.Config
	authProvider providers.Provider
	handler      *handlers.Handler
}

// NewService creates a new sign-in flow service
func NewService(cfg *config.Config, provider providers.Provider) *Service {
	return &Service{
		config:       cfg,
		authProvider: provider,
		handler:      handlers.NewHandler(provider),
	}
}

// RegisterRoutes registers all flow routes on the router
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handler.HandleIndex)
	r.Get(config.CallbackPath, s.handler.HandleCallback)
	r.Get("/user/{username}", s.handler.HandleUser)
}

// GetProvider returns the configured auth provider
func (s *Service) GetProvider() providers.Provider {
	return s.authProvider
}
