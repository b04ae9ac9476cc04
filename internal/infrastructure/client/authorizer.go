package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

// RequestIDHeader carries a per-request correlation id to the backend.
const RequestIDHeader = "X-Request-ID"

var _ ports.SessionObserver = (*Authorizer)(nil)

type bearerKey struct{}

// WithBearer pins the bearer token for requests made with ctx, overriding the
// session token. Identity verification during bootstrap uses it because the
// session does not hold the token yet.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

func bearerFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerKey{}).(string)
	return token, ok && token != ""
}

// Authorizer attaches the session's bearer credential to every outgoing
// request. It observes the session, so the header always reflects the most
// recently committed token and no call site sets it by hand.
type Authorizer struct {
	next    http.RoundTripper
	limiter *rate.Limiter

	mu    sync.RWMutex
	token string
}

// NewAuthorizer wraps next. A nil next uses http.DefaultTransport; a nil
// limiter disables client-side throttling.
func NewAuthorizer(next http.RoundTripper, limiter *rate.Limiter) *Authorizer {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Authorizer{next: next, limiter: limiter}
}

// OnSessionChange implements ports.SessionObserver.
func (a *Authorizer) OnSessionChange(s domain.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s.Authenticated {
		a.token = s.Token
		return
	}
	a.token = ""
}

// Token returns the credential currently attached to requests.
func (a *Authorizer) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	out := req.Clone(req.Context())
	if out.Header.Get(RequestIDHeader) == "" {
		out.Header.Set(RequestIDHeader, uuid.NewString())
	}

	token, pinned := bearerFrom(req.Context())
	if !pinned {
		token = a.Token()
	}
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}
	return a.next.RoundTrip(out)
}
