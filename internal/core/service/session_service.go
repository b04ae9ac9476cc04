package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
	"github.com/donatehub/donatehub-client/internal/pkg/validation"
)

const (
	msgTokenInvalid       = "Token invalid"
	msgLoginFailed        = "Login failed"
	msgRegistrationFailed = "Registration failed"
	msgSessionEnded       = "Session ended before the request completed"

	storeTimeout = 5 * time.Second
)

// SessionService is the single mutation point of the client session. Every
// transition goes through commit, which applies domain.Reduce under one lock,
// writes the persisted token in the same critical section, and notifies
// observers in commit order.
//
// Two generation counters decide whether a completion is still current. epoch
// advances on logout and invalidates everything in flight. credentials advances
// whenever a login or register commits and invalidates a bootstrap that began
// before it, so a restored token never overwrites a newer credential.
type SessionService struct {
	api      ports.IdentityAPI
	store    ports.TokenStore
	metrics  ports.Metrics
	validate *validation.Validator
	log      zerolog.Logger
	now      func() time.Time

	mu          sync.Mutex
	state       domain.Session
	epoch       uint64
	credentials uint64
	observers   []ports.SessionObserver

	ready     chan struct{}
	readyOnce sync.Once
}

// NewSessionService returns a service in the initial (loading) state.
func NewSessionService(api ports.IdentityAPI, store ports.TokenStore, metrics ports.Metrics, log zerolog.Logger) *SessionService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &SessionService{
		api:      api,
		store:    store,
		metrics:  metrics,
		validate: validation.New(),
		log:      log,
		now:      time.Now,
		state:    domain.InitialSession(),
		ready:    make(chan struct{}),
	}
}

// Session returns a snapshot of the committed state.
func (s *SessionService) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

// Subscribe registers o and immediately replays the current state to it.
func (s *SessionService) Subscribe(o ports.SessionObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
	o.OnSessionChange(snapshot(s.state))
}

// WaitReady blocks until the startup bootstrap has resolved or ctx is done.
func (s *SessionService) WaitReady(ctx context.Context) (domain.Session, error) {
	select {
	case <-s.ready:
		return s.Session(), nil
	case <-ctx.Done():
		return domain.Session{}, ctx.Err()
	}
}

// Bootstrap resolves the persisted token into a live session. It never fails:
// every path ends in a committed, non-loading state.
func (s *SessionService) Bootstrap(ctx context.Context) domain.Session {
	defer s.readyOnce.Do(func() { close(s.ready) })
	gen := s.current()

	token, err := s.store.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("token store unreadable, starting anonymous")
		token = ""
	}
	if token == "" {
		s.log.Debug().Msg("no persisted token")
		return s.commit(gen, domain.Event{Kind: domain.EventAnonymous}, nil)
	}

	if expiredJWT(token, s.now()) {
		s.log.Info().Msg("persisted token expired")
		return s.commit(gen, domain.Event{Kind: domain.EventBootstrapFailed, Error: msgTokenInvalid}, s.store.Clear)
	}

	user, err := s.api.Me(ctx, token)
	if err != nil || user == nil {
		s.log.Info().Err(err).Msg("persisted token rejected")
		return s.commit(gen, domain.Event{Kind: domain.EventBootstrapFailed, Error: msgTokenInvalid}, s.store.Clear)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
	return s.commit(gen, domain.Event{Kind: domain.EventBootstrapSucceeded, User: user, Token: token}, nil)
}

// Login authenticates with email and password. The returned Result carries
// the session committed by this call.
func (s *SessionService) Login(ctx context.Context, email, password string) ports.Result {
	gen := s.begin()

	in := ports.LoginInput{Email: strings.TrimSpace(email), Password: password}
	if err := s.validate.Validate(&in); err != nil {
		return s.fail(gen, err.Error())
	}

	res, err := s.api.Login(ctx, in)
	return s.finish(gen, res, err, msgLoginFailed)
}

// Register creates an account and treats the returned token as a login.
func (s *SessionService) Register(ctx context.Context, name, email, password string, role domain.Role) ports.Result {
	gen := s.begin()

	in := ports.RegisterInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
		Role:     role,
	}
	if err := s.validate.Validate(&in); err != nil {
		return s.fail(gen, err.Error())
	}

	res, err := s.api.Register(ctx, in)
	return s.finish(gen, res, err, msgRegistrationFailed)
}

// Logout erases the persisted token and resets the session. Any operation
// still in flight is invalidated and its completion will be discarded.
func (s *SessionService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked()
}

// LogoutIf logs out only while token is still the committed credential. It
// reports whether a logout happened. A rejection of an earlier session's token
// must not end the session that replaced it.
func (s *SessionService) LogoutIf(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || s.state.Token != token {
		s.metrics.StaleCompletionDropped(domain.EventLoggedOut)
		s.log.Debug().Msg("ignoring rejection of a replaced credential")
		return false
	}
	s.logoutLocked()
	return true
}

func (s *SessionService) logoutLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	s.epoch++
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear persisted token")
	}
	s.apply(domain.Event{Kind: domain.EventLoggedOut})
	s.log.Info().Msg("logged out")
}

func (s *SessionService) finish(gen generation, res *ports.AuthResult, err error, fallback string) ports.Result {
	if err == nil && (res == nil || res.Token == "" || res.User == nil) {
		err = errors.New("incomplete auth response")
	}
	if err != nil {
		msg := ports.ServerMessage(err)
		if msg == "" {
			msg = fallback
		}
		s.log.Info().Err(err).Msg("credential operation rejected")
		return s.fail(gen, msg)
	}

	persist := func(ctx context.Context) error { return s.store.Set(ctx, res.Token) }
	state, applied := s.tryCommit(gen, domain.Event{Kind: domain.EventLoginSucceeded, User: res.User, Token: res.Token}, persist)
	if !applied {
		return ports.Result{Success: false, Error: msgSessionEnded, Session: state}
	}
	s.log.Info().Str("user_id", state.User.ID).Str("role", string(state.User.Role)).Msg("logged in")
	return ports.Result{Success: true, Session: state}
}

func (s *SessionService) fail(gen generation, msg string) ports.Result {
	state, applied := s.tryCommit(gen, domain.Event{Kind: domain.EventLoginFailed, Error: msg}, s.store.Clear)
	if !applied {
		return ports.Result{Success: false, Error: msgSessionEnded, Session: state}
	}
	return ports.Result{Success: false, Error: state.Error, Session: state}
}

// generation identifies the session history an operation started in.
type generation struct {
	epoch       uint64
	credentials uint64
}

// begin marks the session loading and returns the generation the operation
// must still be in when it completes.
func (s *SessionService) begin() generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(domain.Event{Kind: domain.EventLoading, Loading: true})
	return generation{epoch: s.epoch, credentials: s.credentials}
}

func (s *SessionService) current() generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation{epoch: s.epoch, credentials: s.credentials}
}

func (s *SessionService) commit(gen generation, ev domain.Event, persist func(context.Context) error) domain.Session {
	state, _ := s.tryCommit(gen, ev, persist)
	return state
}

// tryCommit applies a terminal event unless the operation has been
// superseded: by a logout for any event, or by a committed login or register
// for a bootstrap event. persist runs inside the critical section so the
// persisted slot always matches the committed state.
func (s *SessionService) tryCommit(gen generation, ev domain.Event, persist func(context.Context) error) (domain.Session, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen.epoch != s.epoch || (isBootstrapEvent(ev.Kind) && gen.credentials != s.credentials) {
		s.metrics.StaleCompletionDropped(ev.Kind)
		s.log.Debug().Str("event", string(ev.Kind)).Msg("dropping superseded completion")
		return snapshot(s.state), false
	}
	if persist != nil {
		if err := persist(ctx); err != nil {
			s.log.Error().Err(err).Str("event", string(ev.Kind)).Msg("token store write failed")
		}
	}
	if ev.Kind == domain.EventLoginSucceeded || ev.Kind == domain.EventLoginFailed {
		s.credentials++
	}
	s.apply(ev)
	return snapshot(s.state), true
}

func isBootstrapEvent(kind domain.EventKind) bool {
	switch kind {
	case domain.EventAnonymous, domain.EventBootstrapSucceeded, domain.EventBootstrapFailed:
		return true
	}
	return false
}

// apply must be called with mu held.
func (s *SessionService) apply(ev domain.Event) {
	s.state = domain.Reduce(s.state, ev)
	s.metrics.SessionTransition(ev.Kind)
	view := snapshot(s.state)
	for _, o := range s.observers {
		o.OnSessionChange(view)
	}
}

func snapshot(st domain.Session) domain.Session {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// expiredJWT reports whether token is a JWT whose exp claim has passed. Opaque
// tokens and tokens without exp are left for the backend to judge.
func expiredJWT(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}
