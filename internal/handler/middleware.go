package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"premam/internal/auth"
	apperrors "premam/internal/errors"
	"premam/internal/service"
)

// adminSessionKey is where the resolved session lives in the echo context.
const adminSessionKey = "admin_session"

// AdminTokenHeader carries the opaque moderation session token.
const AdminTokenHeader = "X-Admin-Token"

// AdminRequired gates inbox reads and moderation mutations behind a live
// admin session. Missing or expired tokens get 401; callers are expected to
// re-authenticate, not retry.
func AdminRequired(admins service.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractAdminToken(c)
			session, err := admins.Authenticate(c.Request().Context(), token)
			if err != nil {
				return respondError(c, apperrors.ErrUnauthorized)
			}
			c.Set(adminSessionKey, session)
			return next(c)
		}
	}
}

func extractAdminToken(c echo.Context) string {
	if token := c.Request().Header.Get(AdminTokenHeader); token != "" {
		return token
	}
	// Also accept a bearer header for clients that reuse one auth slot.
	authz := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}

// sessionFromContext returns the session placed by AdminRequired.
func sessionFromContext(c echo.Context) *auth.Session {
	session, _ := c.Get(adminSessionKey).(*auth.Session)
	return session
}
