package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bouncerio/bouncer-login/internal/auth/models"
	"github.com/bouncerio/bouncer-login/internal/config"
	"github.com/bouncerio/bouncer-login/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Endpoint is Bouncer's OAuth 2.0 endpoint. Bouncer authenticates clients on
// the token request with HTTP Basic credentials.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://www.bouncer.io/oauth/authorize",
	TokenURL:  "https://www.bouncer.io/oauth/token",
	AuthStyle: oauth2.AuthStyleInHeader,
}

// DefaultProfileURL is Bouncer's authenticated profile endpoint.
const DefaultProfileURL = "https://www.bouncer.io/api/user"

const defaultTimeout = 10 * time.Second

type BouncerProvider struct {
	oauth2Config *oauth2.Config
	profileURL   string
	httpClient   *http.Client
}

// NewBouncerProvider builds a provider from the OAuth config. redirectURL is
// the absolute callback URL registered with Bouncer; empty URL fields in cfg
// fall back to the bouncer.io endpoints.
func NewBouncerProvider(cfg *config.OAuthConfig, redirectURL string) *BouncerProvider {
	endpoint := Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	profileURL := DefaultProfileURL
	if cfg.ProfileURL != "" {
		profileURL = cfg.ProfileURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &BouncerProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
		},
		profileURL: profileURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LoginURL returns the authorization URL carrying client_id, redirect_uri and
// response_type=code. No state parameter is sent: this app keeps no session
// to bind one to.
func (p *BouncerProvider) LoginURL() string {
	return p.oauth2Config.AuthCodeURL("")
}

func (p *BouncerProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, classifyFlowError(StageTokenExchange, err)
	}
	return token, nil
}

func (p *BouncerProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*models.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return nil, &FlowError{Stage: StageProfileFetch, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	token.SetAuthHeader(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, classifyFlowError(StageProfileFetch, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("Failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &FlowError{Stage: StageProfileFetch, Status: resp.StatusCode}
	}

	// Bouncer nests the profile under a "data" envelope
	var payload struct {
		Data struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Name     string `json:"name"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FlowError{Stage: StageProfileFetch, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if payload.Data.Username == "" {
		return nil, &FlowError{Stage: StageProfileFetch, Err: fmt.Errorf("profile response missing data.username")}
	}

	return &models.Profile{
		Username: payload.Data.Username,
		Email:    payload.Data.Email,
		Name:     payload.Data.Name,
	}, nil
}
