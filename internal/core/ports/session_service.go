package ports

import (
	"context"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

// Result is the outcome of a credential operation. Session is the state the
// same operation committed, or the current state when it was superseded.
type Result struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Session domain.Session `json:"session"`
}

// SessionObserver is notified after every committed session transition, in
// commit order.
type SessionObserver interface {
	OnSessionChange(s domain.Session)
}

// SessionService owns the client session lifecycle.
type SessionService interface {
	Bootstrap(ctx context.Context) domain.Session
	Login(ctx context.Context, email, password string) Result
	Register(ctx context.Context, name, email, password string, role domain.Role) Result
	Logout()
	// LogoutIf logs out only if token is still the committed credential.
	LogoutIf(token string) bool
	Session() domain.Session
	// WaitReady blocks until the startup bootstrap has resolved.
	WaitReady(ctx context.Context) (domain.Session, error)
	// Subscribe registers o for every later commit. Observers run while the
	// session is locked and must not call back into the service.
	Subscribe(o SessionObserver)
}
