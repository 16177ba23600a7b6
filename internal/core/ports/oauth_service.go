package ports

import (
	"context"
	"time"
)

// ClaimsExtractor normalizes the raw userinfo attributes of one identity
// provider. One implementation exists per supported provider, selected by
// registration id.
type ClaimsExtractor interface {
	ExternalID(attrs map[string]any) string
	Email(attrs map[string]any) string
	Name(attrs map[string]any) string
}

// OAuthService reconciles federated identities with local accounts and issues
// the same session-token contract as a password login.
type OAuthService interface {
	// ResolveLogin links or creates the account matching the provider claims.
	// Fails with domain.ErrMissingEmail when no email was supplied, and with
	// domain.ErrProviderMismatch when the email is already registered under a
	// different provider. Idempotent: repeated identical logins converge on
	// the same account.
	ResolveLogin(ctx context.Context, provider string, attrs map[string]any) (*AuthResult, error)
}

// StateStore persists one-shot OAuth2 state nonces between the authorization
// redirect and the provider callback.
type StateStore interface {
	Save(ctx context.Context, state, provider string, ttl time.Duration) error
	// Consume returns the provider the state was created for and deletes it,
	// so a state value can never be replayed.
	Consume(ctx context.Context, state string) (string, error)
}
