package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/task-system/internal/api/middleware"
)

// ctxPrincipal extracts the identity injected by the Authenticate middleware
// and fast-fails before any service call: a non-empty user id proves the gate
// ran and verified a token for this request.
func ctxPrincipal(c echo.Context) (userID, username string, admin bool, err error) {
	userID, _ = c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return "", "", false, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ = c.Get(middleware.CtxUsername).(string)
	admin, _ = c.Get(middleware.CtxAdmin).(bool)
	return userID, username, admin, nil
}
