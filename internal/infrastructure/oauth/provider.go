package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/taskmanagement/task-system/internal/core/ports"
	"github.com/taskmanagement/task-system/internal/infrastructure/config"
)

// Provider drives the authorization-code flow for one identity provider. The
// userinfo endpoint is provider specific, everything else is plain OAuth2.
type Provider struct {
	config      *oauth2.Config
	userInfoURL string
}

var _ ports.ProviderGateway = (*Provider)(nil)

// AuthCodeURL returns the provider consent URL carrying the given state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// FetchClaims exchanges the authorization code for a token and fetches the
// raw userinfo attributes with it.
func (p *Provider) FetchClaims(ctx context.Context, code string) (map[string]any, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var claims map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return claims, nil
}

// Registry holds the providers configured at startup, keyed by registration
// id ("google", "github").
type Registry struct {
	providers map[string]*Provider
}

var _ ports.ProviderRegistry = (*Registry)(nil)

// NewRegistry builds the registry from the configured client credentials.
// Providers without a client id are left unregistered rather than failing
// startup, so a deployment can enable only the providers it uses.
func NewRegistry(cfg config.OAuthConfig) *Registry {
	providers := make(map[string]*Provider)

	if cfg.GoogleClientID != "" {
		providers["google"] = &Provider{
			config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				RedirectURL:  cfg.RedirectBaseURL + "/login/oauth2/code/google",
				Scopes:       []string{"openid", "profile", "email"},
			},
			userInfoURL: "https://www.googleapis.com/oauth2/v3/userinfo",
		}
	}

	if cfg.GithubClientID != "" {
		providers["github"] = &Provider{
			config: &oauth2.Config{
				ClientID:     cfg.GithubClientID,
				ClientSecret: cfg.GithubClientSecret,
				Endpoint:     github.Endpoint,
				RedirectURL:  cfg.RedirectBaseURL + "/login/oauth2/code/github",
				Scopes:       []string{"read:user", "user:email"},
			},
			userInfoURL: "https://api.github.com/user",
		}
	}

	return &Registry{providers: providers}
}

// Get resolves a configured provider by registration id.
func (r *Registry) Get(name string) (ports.ProviderGateway, bool) {
	p, ok := r.providers[name]
	return p, ok
}
