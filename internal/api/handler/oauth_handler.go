package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/task-system/internal/api/metrics"
	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

// stateTTL bounds how long a login may sit between the consent redirect and
// the provider callback.
const stateTTL = 10 * time.Minute

// OAuthHandler implements the federated login entry points. The heavy lifting
// (linking provider identities to local accounts) lives in the OAuthService;
// this handler owns the authorization-code choreography and the one-shot
// state nonce.
type OAuthHandler struct {
	providers    ports.ProviderRegistry
	states       ports.StateStore
	oauthService ports.OAuthService
}

func NewOAuthHandler(providers ports.ProviderRegistry, states ports.StateStore, oauthService ports.OAuthService) *OAuthHandler {
	return &OAuthHandler{providers: providers, states: states, oauthService: oauthService}
}

// Begin redirects the caller to the provider's consent page.
//
// @Summary      Start a federated login
// @Tags         oauth2
// @Param        provider  path  string  true  "Provider registration id (google, github)"
// @Success      302
// @Failure      404  {object}  errorResponse
// @Router       /oauth2/{provider} [get]
func (h *OAuthHandler) Begin(c echo.Context) error {
	name := c.Param("provider")
	provider, ok := h.providers.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProviderUnknown, name)
	}

	state, err := newState()
	if err != nil {
		return fmt.Errorf("generate state: %w", err)
	}
	if err := h.states.Save(c.Request().Context(), state, name, stateTTL); err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}

	return c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// Callback completes the federated login and returns the same bearer-token
// contract as the password login.
//
// @Summary      Federated login callback
// @Tags         oauth2
// @Produce      json
// @Param        provider  path   string  true  "Provider registration id"
// @Param        code      query  string  true  "Authorization code"
// @Param        state     query  string  true  "State nonce from the redirect"
// @Success      200  {object}  jwtAuthResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /login/oauth2/code/{provider} [get]
func (h *OAuthHandler) Callback(c echo.Context) error {
	name := c.Param("provider")
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing code or state")
	}

	// The nonce is consumed on first use; replays and forgeries fail here.
	savedProvider, err := h.states.Consume(c.Request().Context(), state)
	if err != nil || savedProvider != name {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid oauth state")
	}

	provider, ok := h.providers.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProviderUnknown, name)
	}

	attrs, err := provider.FetchClaims(c.Request().Context(), code)
	if err != nil {
		metrics.OAuthLoginsTotal.WithLabelValues(name, "error").Inc()
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider error")
	}

	result, err := h.oauthService.ResolveLogin(c.Request().Context(), name, attrs)
	if err != nil {
		if errors.Is(err, domain.ErrProviderMismatch) {
			metrics.OAuthLoginsTotal.WithLabelValues(name, "mismatch").Inc()
		} else {
			metrics.OAuthLoginsTotal.WithLabelValues(name, "error").Inc()
		}
		return err
	}

	metrics.OAuthLoginsTotal.WithLabelValues(name, "ok").Inc()
	return c.JSON(http.StatusOK, jwtAuthResponse{
		AccessToken: result.Token,
		TokenType:   "Bearer",
		UserID:      result.User.ID,
		Username:    result.User.Username,
		Email:       result.User.Email,
		Admin:       result.Admin,
	})
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
