package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

const sessionKey = "session"

// RequireSession waits for the startup bootstrap, then rejects the request
// unless the session is authenticated. The committed session is stored on the
// echo context for handlers.
func RequireSession(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessions.WaitReady(c.Request().Context())
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session not ready")
			}
			if !sess.Authenticated || sess.User == nil {
				return domain.ErrUnauthenticated
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(sessionKey).(domain.Session)
	return sess, ok
}
