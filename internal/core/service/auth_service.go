package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

// AuthService implements local registration and credential authentication.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher *PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, hasher *PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates an active local account holding ROLE_USER.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if taken, err := s.users.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameExists
	}
	if taken, err := s.users.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	userRole, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Active:       true,
		Provider:     domain.ProviderLocal,
		Roles:        []string{userRole.Name},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login authenticates identifier (username or email) plus password. Unknown
// accounts, wrong passwords, deactivated accounts and federated-only accounts
// all fail with ErrInvalidCredentials so the caller learns nothing about why.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.AuthResult, error) {
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	// Federated accounts have no password hash; Verify rejects the empty
	// digest, so they fall through to the same failure as a bad password.
	if !user.Active || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ports.TokenClaims{
		Subject: user.Username,
		UserID:  user.ID,
		Admin:   user.IsAdmin(),
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user, Admin: user.IsAdmin()}, nil
}
