package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/bouncerio/bouncer-login/internal/auth/models"
	"github.com/bouncerio/bouncer-login/internal/auth/providers"
	"github.com/bouncerio/bouncer-login/internal/logger"
	"github.com/bouncerio/bouncer-login/internal/views"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler handles the sign-in flow's HTTP requests
type Handler struct {
	authProvider providers.Provider
}

// NewHandler creates a new Handler instance
func NewHandler(provider providers.Provider) *Handler {
	return &Handler{
		authProvider: provider,
	}
}

// HandleIndex handles the landing page with the sign-in link
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	views.WriteSignIn(w, h.authProvider.LoginURL())
}

// HandleCallback handles the provider's authorization response: it exchanges
// the code for a token, fetches the user's profile and redirects to the
// welcome page.
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	params := models.ParseCallbackParams(r.URL.Query())

	// A declined authorization is a normal outcome, not a fault: show what
	// the provider said and offer a retry. No back-channel calls are made.
	if params.Denied() {
		logger.Info("Provider declined authorization",
			zap.String("error", params.Error),
			zap.String("error_description", params.ErrorDescription),
		)
		views.WriteProviderError(w, params.Error, params.ErrorDescription)
		return
	}

	if params.Code == "" {
		logger.Warn("Callback carried neither code nor error")
		views.WriteFailure(w, http.StatusBadRequest, "The sign-in response was missing its authorization code.")
		return
	}

	token, err := h.authProvider.ExchangeCode(r.Context(), params.Code)
	if err != nil {
		h.writeFlowFailure(w, "Failed to exchange code", "We could not complete the sign-in with Bouncer.", err)
		return
	}

	profile, err := h.authProvider.FetchProfile(r.Context(), token)
	if err != nil {
		h.writeFlowFailure(w, "Failed to fetch profile", "We could not fetch your profile from Bouncer.", err)
		return
	}

	http.Redirect(w, r, "/user/"+url.PathEscape(profile.Username), http.StatusFound)
}

// HandleUser handles the welcome page for the username in the path
func (h *Handler) HandleUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if decoded, err := url.PathUnescape(username); err == nil {
		username = decoded
	}
	views.WriteWelcome(w, username)
}

// writeFlowFailure logs err and renders a failure page. Timeouts map to 504,
// any other upstream failure to 502.
func (h *Handler) writeFlowFailure(w http.ResponseWriter, logMsg, userMsg string, err error) {
	status := http.StatusBadGateway
	fields := []zap.Field{zap.Error(err)}

	var flowErr *providers.FlowError
	if errors.As(err, &flowErr) {
		fields = append(fields, zap.String("stage", string(flowErr.Stage)))
		if flowErr.Status != 0 {
			fields = append(fields, zap.Int("upstream_status", flowErr.Status))
		}
		if flowErr.Timeout {
			status = http.StatusGatewayTimeout
			userMsg = "Bouncer took too long to answer. Please try again."
		}
	}

	logger.Error(logMsg, fields...)
	views.WriteFailure(w, status, userMsg)
}
