package ports

import "context"

// ProviderGateway drives the authorization-code flow against one external
// identity provider. The claim fetch is the only network call in the
// federated login path outside the credential store.
type ProviderGateway interface {
	// AuthCodeURL returns the provider consent URL carrying state.
	AuthCodeURL(state string) string
	// FetchClaims exchanges the authorization code and returns the raw
	// userinfo attributes for the ClaimsExtractor to normalize.
	FetchClaims(ctx context.Context, code string) (map[string]any, error)
}

// ProviderRegistry resolves configured providers by registration id.
type ProviderRegistry interface {
	Get(name string) (ProviderGateway, bool)
}
