// Package authgate wires the session store, auth controller, and REST
// client into a ready-to-use authentication kit for the tutoring
// marketplace frontend and its gateways.
package authgate

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tutorlink/authgate/client"
	"github.com/tutorlink/authgate/core"
	"github.com/tutorlink/authgate/pkg/cache"
	"github.com/tutorlink/authgate/services"
	"github.com/tutorlink/authgate/tokenstore"
)

// interfaces
type (
	AuthAPI       = core.AuthAPI
	TokenStore    = core.TokenStore
	IdentityCache = core.IdentityCache
	Navigator     = core.Navigator
)

// structs
type (
	Identity     = core.Identity
	Role         = core.Role
	Snapshot     = core.Snapshot
	SignUpInput  = core.SignUpInput
	SignInInput  = core.SignInInput
	SignInResult = core.SignInResult

	SessionStore   = core.SessionStore
	RedirectPolicy = core.RedirectPolicy
	Guard          = core.Guard
	GuardResult    = core.GuardResult
	Decision       = core.Decision

	Client     = client.Client
	Controller = services.Controller

	APIError = core.APIError
)

const (
	RoleStudent = core.RoleStudent
	RoleTutor   = core.RoleTutor
	RoleAdmin   = core.RoleAdmin

	DecisionLoading  = core.DecisionLoading
	DecisionRender   = core.DecisionRender
	DecisionRedirect = core.DecisionRedirect
)

// Constructors & helpers (convenience re-exports)
var (
	NewSessionStore       = core.NewSessionStore
	NewGuard              = core.NewGuard
	DefaultRedirectPolicy = core.DefaultRedirectPolicy
	NewMemoryTokenStore   = tokenstore.NewMemory
	NewFileTokenStore     = tokenstore.NewFile
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrSessionExpired     = core.ErrSessionExpired
	ErrNetwork            = core.ErrNetwork
	ErrAuthInFlight       = core.ErrAuthInFlight
	ErrTokenRequired      = core.ErrTokenRequired
)

var (
	ErrNameRequired     = core.ErrNameRequired
	ErrEmailRequired    = core.ErrEmailRequired
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrInvalidRole      = core.ErrInvalidRole
)

var (
	ErrBaseURLRequired    = core.ErrBaseURLRequired
	ErrTokenStoreRequired = core.ErrTokenStoreRequired
)

// Config assembles a full auth kit. BaseURL is the only required field;
// everything else has a working default.
type Config struct {
	// BaseURL is the marketplace backend origin.
	BaseURL string

	// Tokens persists the bearer token between sessions. Defaults to an
	// in-memory store.
	Tokens core.TokenStore

	// Cache shares resolved identities between requests. Defaults to an
	// in-process TTL cache; pass nil via DisableCache to opt out.
	Cache        core.IdentityCache
	DisableCache bool

	// Policy decides per-role landing paths.
	Policy *core.RedirectPolicy

	// Navigate receives client-side destinations after login, register,
	// and logout.
	Navigate core.Navigator

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Kit bundles the wired pieces. Store feeds route guards, Controller
// drives the auth operations, API exposes the raw backend client.
type Kit struct {
	Store      *core.SessionStore
	Controller *services.Controller
	API        *client.Client
}

func New(config Config) (*Kit, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	api, err := client.New(client.Config{
		BaseURL:    config.BaseURL,
		HTTPClient: config.HTTPClient,
		Logger:     config.Logger,
	})
	if err != nil {
		return nil, err
	}

	tokens := config.Tokens
	if tokens == nil {
		tokens = tokenstore.NewMemory()
	}

	identityCache := config.Cache
	if identityCache == nil && !config.DisableCache {
		identityCache = cache.NewInMemory(cache.Config{
			TTL:     5 * time.Minute,
			MaxSize: 500,
		})
	}

	store := core.NewSessionStore()

	controller, err := services.NewController(services.ControllerConfig{
		API:      api,
		Store:    store,
		Tokens:   tokens,
		Cache:    identityCache,
		Policy:   config.Policy,
		Navigate: config.Navigate,
		Logger:   config.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Kit{
		Store:      store,
		Controller: controller,
		API:        api,
	}, nil
}
