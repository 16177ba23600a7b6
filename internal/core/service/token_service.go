package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

// TokenService issues and verifies HS256-signed JWTs. Tokens are stateless:
// validity is signature plus expiry, nothing else. Losing or rotating the
// secret invalidates every outstanding token.
//
// Claim set (stable, the middleware depends on it):
//
//	sub   username
//	uid   account id
//	admin whether the account held ROLE_ADMIN at issue time
//	iat   issued-at (unix seconds)
//	exp   expiry (unix seconds)
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token with expiry = now + ttl.
func (s *TokenService) Issue(claims ports.TokenClaims) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.Subject,
		"uid":   claims.UserID,
		"admin": claims.Admin,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})
	return t.SignedString(s.secret)
}

// Verify parses and validates token. Every failure mode (bad signature,
// malformed token, elapsed expiry) collapses to domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	uid, _ := claims["uid"].(string)
	admin, _ := claims["admin"].(bool)
	if sub == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenClaims{Subject: sub, UserID: uid, Admin: admin}, nil
}
