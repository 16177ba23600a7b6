package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

// OAuthService reconciles federated identities with local accounts.
// Accounts are keyed by email: a returning email under the same provider is
// linked (and its display name refreshed), an email seen first under another
// provider is a hard failure, and an unseen email provisions a new account.
type OAuthService struct {
	users      ports.UserRepository
	roles      ports.RoleRepository
	tokens     ports.TokenService
	extractors map[string]ports.ClaimsExtractor
	logger     zerolog.Logger
}

func NewOAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenService, logger zerolog.Logger) *OAuthService {
	return &OAuthService{
		users:  users,
		roles:  roles,
		tokens: tokens,
		extractors: map[string]ports.ClaimsExtractor{
			"google": googleExtractor{},
			"github": githubExtractor{},
		},
		logger: logger,
	}
}

// ResolveLogin implements the federated login algorithm and issues a session
// token for the resolved account.
func (s *OAuthService) ResolveLogin(ctx context.Context, provider string, attrs map[string]any) (*ports.AuthResult, error) {
	extractor, ok := s.extractors[strings.ToLower(provider)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderUnknown, provider)
	}

	email := extractor.Email(attrs)
	if email == "" {
		return nil, domain.ErrMissingEmail
	}

	user, err := s.resolve(ctx, domain.AuthProvider(strings.ToUpper(provider)), extractor, email, attrs)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(ports.TokenClaims{
		Subject: user.Username,
		UserID:  user.ID,
		Admin:   user.IsAdmin(),
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("provider", provider).Msg("federated login")
	return &ports.AuthResult{Token: token, User: user, Admin: user.IsAdmin()}, nil
}

func (s *OAuthService) resolve(ctx context.Context, provider domain.AuthProvider, extractor ports.ClaimsExtractor, email string, attrs map[string]any) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	switch err {
	case nil:
		if existing.Provider != provider {
			return nil, fmt.Errorf("%w: account is registered with %s, use your %s login", domain.ErrProviderMismatch, existing.Provider, existing.Provider)
		}
		// Returning login: refresh the display name only. Identifiers and the
		// provider tag never change.
		existing.Name = extractor.Name(attrs)
		existing.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case domain.ErrUserNotFound:
		return s.provision(ctx, provider, extractor, email, attrs)
	default:
		return nil, fmt.Errorf("lookup user: %w", err)
	}
}

func (s *OAuthService) provision(ctx context.Context, provider domain.AuthProvider, extractor ports.ClaimsExtractor, email string, attrs map[string]any) (*domain.User, error) {
	userRole, err := s.roles.Ensure(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:          extractor.Name(attrs),
		Username:      email,
		Email:         email,
		Active:        true,
		Provider:      provider,
		ProviderID:    extractor.ExternalID(attrs),
		EmailVerified: true,
		Roles:         []string{userRole.Name},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.users.Create(ctx, user)
	if err == domain.ErrEmailExists || err == domain.ErrUsernameExists {
		// Lost a race with a concurrent first login for the same email; the
		// unique index arbitrates and we converge on the winner's account.
		return s.users.FindByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// googleExtractor reads the Google OpenID Connect userinfo shape.
type googleExtractor struct{}

func (googleExtractor) ExternalID(attrs map[string]any) string { return stringAttr(attrs, "sub") }
func (googleExtractor) Email(attrs map[string]any) string      { return stringAttr(attrs, "email") }
func (googleExtractor) Name(attrs map[string]any) string       { return stringAttr(attrs, "name") }

// githubExtractor reads the GitHub REST /user shape. The id attribute is
// numeric and the display name may be unset, in which case login stands in.
type githubExtractor struct{}

func (githubExtractor) ExternalID(attrs map[string]any) string {
	if id, ok := attrs["id"].(float64); ok {
		return strconv.FormatInt(int64(id), 10)
	}
	return stringAttr(attrs, "id")
}

func (githubExtractor) Email(attrs map[string]any) string { return stringAttr(attrs, "email") }

func (githubExtractor) Name(attrs map[string]any) string {
	if name := stringAttr(attrs, "name"); name != "" {
		return name
	}
	return stringAttr(attrs, "login")
}

func stringAttr(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return s
}
