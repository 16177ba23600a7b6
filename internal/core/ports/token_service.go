package ports

// TokenClaims is the claim set embedded in a session token. Validity is
// determined purely by signature and expiry; there is no revocation list, so
// an issued token stays valid until its expiry elapses.
type TokenClaims struct {
	// Subject is the account's username.
	Subject string
	// UserID is the account id, carried so handlers can run ownership checks
	// without a store lookup.
	UserID string
	// Admin reports whether the account held ROLE_ADMIN at issue time.
	Admin bool
}

// TokenService issues and verifies signed, stateless session tokens.
type TokenService interface {
	// Issue produces a signed token embedding claims, issued-at and
	// expiry = now + the service's configured TTL.
	Issue(claims TokenClaims) (string, error)
	// Verify returns the embedded claims, or domain.ErrTokenInvalid when the
	// signature does not match, the token is malformed or expiry has elapsed.
	Verify(token string) (*TokenClaims, error)
}
