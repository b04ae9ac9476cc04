package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

type stubSessions struct {
	ports.SessionService
	state domain.Session
	err   error
}

func (s *stubSessions) WaitReady(context.Context) (domain.Session, error) {
	return s.state, s.err
}

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestRequireSession_Allows(t *testing.T) {
	c, rec := newContext()
	sessions := &stubSessions{state: domain.Session{
		Authenticated: true,
		User:          &domain.User{ID: "u1", Role: domain.RoleDonor},
		Token:         "T",
	}}

	handler := RequireSession(sessions)(func(c echo.Context) error {
		sess, ok := SessionFrom(c)
		if !ok || sess.User.ID != "u1" {
			t.Fatalf("session not stored on context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSession_RejectsAnonymous(t *testing.T) {
	c, _ := newContext()
	handler := RequireSession(&stubSessions{})(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireSession_NotReady(t *testing.T) {
	c, _ := newContext()
	handler := RequireSession(&stubSessions{err: context.Canceled})(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	var he *echo.HTTPError
	if err := handler(c); !errors.As(err, &he) || he.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %v", err)
	}
}
