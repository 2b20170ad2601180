package providers

import (
	"context"

	"github.com/bouncerio/bouncer-login/internal/auth/models"
	"golang.org/x/oauth2"
)

// Provider defines the operations the sign-in flow needs from an OAuth2
// identity provider.
type Provider interface {
	// LoginURL returns the provider's authorization URL for the code grant.
	LoginURL() string

	// ExchangeCode exchanges an authorization code for a token
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)

	// FetchProfile retrieves the profile of the user the token belongs to
	FetchProfile(ctx context.Context, token *oauth2.Token) (*models.Profile, error)
}
