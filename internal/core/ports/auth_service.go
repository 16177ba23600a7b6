package ports

import (
	"context"

	"github.com/taskmanagement/task-system/internal/core/domain"
)

// RegisterInput carries the fields of a local registration.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// AuthResult is returned by every successful login, local or federated.
type AuthResult struct {
	Token string
	User  *domain.User
	Admin bool
}

// AuthService implements local registration and credential authentication.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login accepts a username or an email as identifier. All failure modes
	// (unknown account, wrong password, deactivated account, federated-only
	// account) surface as domain.ErrInvalidCredentials.
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
}
