package domain

// Session is the client's view of the current actor's authentication state.
//
// Authenticated is true iff both User and Token are set.
type Session struct {
	Authenticated bool   `json:"isAuthenticated"`
	User          *User  `json:"user"`
	Token         string `json:"-"`
	Loading       bool   `json:"loading"`
	Error         string `json:"error,omitempty"`
}

// InitialSession is the state at process start: anonymous, resolution pending.
func InitialSession() Session {
	return Session{Loading: true}
}

// EventKind enumerates the session transitions.
type EventKind string

const (
	EventLoading            EventKind = "loading"
	EventAnonymous          EventKind = "anonymous"
	EventBootstrapSucceeded EventKind = "bootstrap_succeeded"
	EventBootstrapFailed    EventKind = "bootstrap_failed"
	EventLoginSucceeded     EventKind = "login_succeeded"
	EventLoginFailed        EventKind = "login_failed"
	EventLoggedOut          EventKind = "logged_out"
)

// Event is a single session transition. User and Token are read by the
// succeeded kinds, Error by the failed kinds, Loading by EventLoading.
type Event struct {
	Kind    EventKind
	User    *User
	Token   string
	Error   string
	Loading bool
}

// Terminal reports whether the event ends an operation. Terminal events
// replace the whole session rather than merging into it.
func (e Event) Terminal() bool {
	return e.Kind != EventLoading
}

// Reduce is the single transition function for Session. It never mutates s.
func Reduce(s Session, e Event) Session {
	switch e.Kind {
	case EventLoading:
		s.Loading = e.Loading
		return s
	case EventAnonymous:
		return Session{Error: s.Error}
	case EventBootstrapSucceeded, EventLoginSucceeded:
		if e.User == nil || e.Token == "" {
			return Session{Error: "incomplete credentials"}
		}
		u := *e.User
		return Session{Authenticated: true, User: &u, Token: e.Token}
	case EventBootstrapFailed, EventLoginFailed:
		return Session{Error: e.Error}
	case EventLoggedOut:
		return Session{}
	default:
		return s
	}
}
