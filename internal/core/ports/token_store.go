package ports

import "context"

// TokenKey names the single persisted slot holding the bearer token.
const TokenKey = "token"

// TokenStore persists the bearer token outside process memory so it survives
// restarts. Get returns "" with a nil error when the slot is empty.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Pinger is implemented by token stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
