package domain

import "errors"

var (
	// ErrInvalidCredentials covers bad passwords, unknown identifiers,
	// deactivated accounts and password logins against federated-only
	// accounts. Deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid covers bad signatures, malformed tokens and elapsed
	// expiry. Collapsed to one class so the cause is not leaked.
	ErrTokenInvalid = errors.New("invalid token")

	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")

	// ErrProviderMismatch is returned when an email already registered under
	// one identity provider attempts to log in through another. Wrapped with
	// the authoritative provider name so the caller knows which one to use.
	ErrProviderMismatch = errors.New("identity provider mismatch")

	// ErrMissingEmail is returned when a federated provider supplied no email;
	// accounts are keyed by email so the login cannot proceed.
	ErrMissingEmail = errors.New("email not supplied by identity provider")

	ErrProviderUnknown = errors.New("unknown identity provider")

	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
	ErrTaskNotFound = errors.New("task not found")
)
