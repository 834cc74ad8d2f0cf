package core

import "context"

// Ports define interfaces for external dependencies

// ============================================
// AUTH API PORT (the remote backend)
// ============================================

// AuthAPI is the contract of the external REST backend that owns all
// business logic and authorization enforcement. The kit only consumes it.
type AuthAPI interface {
	// SignUp registers a new user. The backend requires email
	// verification before first login, so no session material is
	// returned.
	SignUp(ctx context.Context, input SignUpInput) error

	// SignIn exchanges credentials for an identity and a bearer token.
	SignIn(ctx context.Context, input SignInInput) (*SignInResult, error)

	// SignOut invalidates the session behind token on the backend.
	SignOut(ctx context.Context, token string) error

	// Session returns the identity the backend associates with token,
	// or ErrSessionExpired when the token is no longer accepted.
	Session(ctx context.Context, token string) (*Identity, error)
}

// ============================================
// TOKEN STORE PORT (durable local storage)
// ============================================

// TokenStore persists the bearer token across process restarts under a
// single fixed slot. Load returns an empty string when no token is stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// ============================================
// IDENTITY CACHE PORT (gateway deployments)
// ============================================

// IdentityCache caches resolved identities keyed by token hash so that
// gateway deployments do not hit the backend on every guarded request.
// Get returns ErrCacheMiss when the hash is unknown or expired.
type IdentityCache interface {
	Get(ctx context.Context, tokenHash string) (*Identity, error)
	Set(ctx context.Context, tokenHash string, identity *Identity) error
	Delete(ctx context.Context, tokenHash string) error
}

// ============================================
// NAVIGATION PORT
// ============================================

// Navigator is invoked by the controller when a flow ends with a
// client-side navigation (login landing, post-register, logout).
type Navigator func(path string)
