package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/task-system/internal/api/metrics"
	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

// Context keys populated by Authenticate for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxAdmin    = "admin"
	CtxRole     = "role"
)

// Authenticate is the per-request authentication gate. Three outcomes:
//
//   - no Authorization header: the request proceeds unauthenticated and the
//     downstream policy (RequireAuth / RBAC) decides whether that is enough;
//   - a bearer token that verifies: identity claims are attached to the
//     request context;
//   - a token that is present but malformed, badly signed or expired: the
//     request is rejected with 401 before any handler runs. The cause is not
//     distinguished to the caller.
func Authenticate(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenInvalid.Error())
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			role := domain.RoleUser
			if claims.Admin {
				role = domain.RoleAdmin
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUsername, claims.Subject)
			c.Set(CtxAdmin, claims.Admin)
			c.Set(CtxRole, role)

			return next(c)
		}
	}
}

// RequireAuth rejects requests that reached this point without an identity
// established by Authenticate.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get(CtxUserID).(string); id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			return next(c)
		}
	}
}
