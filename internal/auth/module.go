package auth

import (
	"github.com/bouncerio/bouncer-login/internal/auth/providers"
	"github.com/bouncerio/bouncer-login/internal/config"
	"go.uber.org/fx"
)

// Module provides the sign-in flow dependencies
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			newBouncerProvider,
			fx.As(new(providers.Provider)),
		),
		NewService,
	),
)

func newBouncerProvider(cfg *config.Config) *providers.BouncerProvider {
	return providers.NewBouncerProvider(&cfg.OAuth, cfg.CallbackURL())
}
