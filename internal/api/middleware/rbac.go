package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

// RequireRole admits the request only if the session's role satisfies
// required. It must run after RequireSession.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !domain.CanAccess(required, sess.User.Role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
