// Package services orchestrates the authentication flows: it is the only
// writer of the session store and the only caller of the auth backend on
// behalf of the session.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tutorlink/authgate/core"
	"github.com/tutorlink/authgate/pkg/token"
)

// ControllerConfig wires a Controller.
type ControllerConfig struct {
	API    core.AuthAPI
	Store  *core.SessionStore
	Tokens core.TokenStore

	// Optional
	Cache    core.IdentityCache
	Policy   *core.RedirectPolicy
	Navigate core.Navigator
	Logger   *slog.Logger
}

// Controller encapsulates login, registration, logout and the session
// bootstrap. Exactly one Controller writes to a given SessionStore; route
// guards and views only read it.
//
// Mutating calls are serialized: a login or registration attempted while
// another mutating call is in flight fails fast with ErrAuthInFlight.
// Logout instead waits for the in-flight call, because local clearing
// must never be refused.
type Controller struct {
	api      core.AuthAPI
	store    *core.SessionStore
	tokens   core.TokenStore
	cache    core.IdentityCache
	policy   core.RedirectPolicy
	navigate core.Navigator
	log      *slog.Logger

	mu        sync.Mutex
	bootstrap sync.Once
}

// NewController validates the config and builds a controller.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if cfg.API == nil {
		return nil, core.ErrAPIRequired
	}
	if cfg.Store == nil {
		return nil, core.ErrStoreRequired
	}
	if cfg.Tokens == nil {
		return nil, core.ErrTokenStoreRequired
	}

	policy := core.DefaultRedirectPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		api:      cfg.API,
		store:    cfg.Store,
		tokens:   cfg.Tokens,
		cache:    cfg.Cache,
		policy:   policy,
		navigate: cfg.Navigate,
		log:      logger,
	}, nil
}

// Policy returns the redirect policy the controller navigates with.
func (c *Controller) Policy() core.RedirectPolicy {
	return c.policy
}

// CheckSession performs the one-time session bootstrap: resolve the
// stored token against the backend and settle the store. It never
// returns an error; every failure is absorbed into "no session". Calls
// after the first are no-ops - use Refresh for explicit re-fetches.
func (c *Controller) CheckSession(ctx context.Context) {
	c.bootstrap.Do(func() {
		c.resolveSession(ctx)
	})
}

// Refresh re-fetches the current identity with the same
// absorb-all-failures policy as the bootstrap.
func (c *Controller) Refresh(ctx context.Context) {
	c.resolveSession(ctx)
}

// resolveSession settles the store from the durable token. The resolving
// flag is guaranteed to end up false no matter how the check goes.
func (c *Controller) resolveSession(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.SetResolving(true)
	defer c.store.SetResolving(false)

	stored, err := c.tokens.Load(ctx)
	if err != nil {
		c.log.Warn("session check: token load failed", "error", err)
		c.store.Set(nil)
		return
	}
	if stored == "" {
		c.store.Set(nil)
		return
	}

	if token.Expired(stored) {
		c.log.Debug("session check: stored token expired locally")
		c.clearToken(ctx, stored)
		c.store.Set(nil)
		return
	}

	identity, err := c.api.Session(ctx, stored)
	if err != nil {
		// A rejected token is dead weight; a network failure may be
		// transient, so the token survives for the next refresh.
		if !errors.Is(err, core.ErrNetwork) {
			c.clearToken(ctx, stored)
		}
		c.log.Debug("session check resolved to no session", "error", err)
		c.store.Set(nil)
		return
	}

	c.store.Set(identity)
}

// Login authenticates with the backend, persists the bearer token, sets
// the identity and navigates to the role's landing path. On failure the
// store is untouched and a typed error goes back for inline display.
func (c *Controller) Login(ctx context.Context, email, password string) (*core.Identity, error) {
	if email == "" {
		return nil, core.ErrEmailRequired
	}
	if password == "" {
		return nil, core.ErrPasswordRequired
	}

	if !c.mu.TryLock() {
		return nil, core.ErrAuthInFlight
	}
	defer c.mu.Unlock()

	result, err := c.api.SignIn(ctx, core.SignInInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if result.Token != "" {
		if err := c.tokens.Save(ctx, result.Token); err != nil {
			return nil, fmt.Errorf("persist session token: %w", err)
		}
	}

	c.store.Set(result.Identity)
	c.goTo(c.policy.LandingPath(result.Identity.Role))
	return result.Identity, nil
}

// Register creates an account. The backend requires email verification
// before first login, so the store is not touched; on success the user
// is sent to the login view to await the verification email.
func (c *Controller) Register(ctx context.Context, name, email, password string, role core.Role) error {
	if name == "" {
		return core.ErrNameRequired
	}
	if email == "" {
		return core.ErrEmailRequired
	}
	if password == "" {
		return core.ErrPasswordRequired
	}
	// Admin accounts are provisioned server-side, never self-registered.
	if role != core.RoleStudent && role != core.RoleTutor {
		return core.ErrInvalidRole
	}

	if !c.mu.TryLock() {
		return core.ErrAuthInFlight
	}
	defer c.mu.Unlock()

	if err := c.api.SignUp(ctx, core.SignUpInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}); err != nil {
		return err
	}

	c.goTo(c.policy.LoginPath)
	return nil
}

// Logout clears the local session unconditionally. The remote sign-out
// is best effort: a flaky network must not keep the user signed in
// locally.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, err := c.tokens.Load(ctx)
	if err != nil {
		c.log.Warn("logout: token load failed", "error", err)
	}
	if stored != "" {
		if err := c.api.SignOut(ctx, stored); err != nil {
			c.log.Warn("logout: remote sign-out failed", "error", err)
		}
	}

	c.clearToken(ctx, stored)
	c.store.Set(nil)
	c.goTo(c.policy.LoginPath)
}

// clearToken drops the durable token and its cache entry.
func (c *Controller) clearToken(ctx context.Context, stored string) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Warn("could not clear token store", "error", err)
	}
	if c.cache != nil && stored != "" {
		_ = c.cache.Delete(ctx, hashToken(stored))
	}
}

func (c *Controller) goTo(path string) {
	if c.navigate != nil {
		c.navigate(path)
	}
}
