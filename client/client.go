// Package client implements the REST collaborator contract of the
// tutoring marketplace backend. It is a thin transport layer: no business
// logic, no session state, just requests, envelopes and error mapping.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tutorlink/authgate/core"
)

const (
	defaultAuthBasePath = "/api/auth"
	defaultMePath       = "/api/v1/users/me"
	defaultTimeout      = 15 * time.Second

	maxResponseBytes = 1 << 20
)

// Config configures the REST client.
type Config struct {
	// BaseURL is the backend origin, e.g. "https://api.tutorlink.app".
	BaseURL string

	// AuthBasePath prefixes the auth endpoints. Defaults to /api/auth.
	AuthBasePath string

	// MePath is the current-identity endpoint. Defaults to /api/v1/users/me.
	MePath string

	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client talks to the marketplace backend.
type Client struct {
	baseURL  string
	authBase string
	mePath   string
	http     *http.Client
	log      *slog.Logger
}

var _ core.AuthAPI = (*Client)(nil)

// New validates the config and builds a client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, core.ErrBaseURLRequired
	}

	authBase := cfg.AuthBasePath
	if authBase == "" {
		authBase = defaultAuthBasePath
	}
	mePath := cfg.MePath
	if mePath == "" {
		mePath = defaultMePath
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		authBase: authBase,
		mePath:   mePath,
		http:     httpClient,
		log:      logger,
	}, nil
}

// SignUp registers a new user. The backend sends a verification email;
// no session material comes back.
func (c *Client) SignUp(ctx context.Context, input core.SignUpInput) error {
	return c.do(ctx, http.MethodPost, c.authBase+"/sign-up", "", input, nil)
}

// SignIn exchanges credentials for an identity and bearer token. A 401
// from the backend maps to ErrInvalidCredentials.
func (c *Client) SignIn(ctx context.Context, input core.SignInInput) (*core.SignInResult, error) {
	var result core.SignInResult
	err := c.do(ctx, http.MethodPost, c.authBase+"/sign-in", "", input, &result)
	if err != nil {
		var apiErr *core.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, core.ErrInvalidCredentials
		}
		return nil, err
	}
	if result.Identity == nil {
		return nil, fmt.Errorf("sign-in response missing user payload")
	}
	return &result, nil
}

// SignOut invalidates the session behind token on the backend.
func (c *Client) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return core.ErrTokenRequired
	}
	return c.do(ctx, http.MethodPost, c.authBase+"/sign-out", token, nil, nil)
}

// Session fetches the identity behind token. A 401 maps to
// ErrSessionExpired.
func (c *Client) Session(ctx context.Context, token string) (*core.Identity, error) {
	if token == "" {
		return nil, core.ErrTokenRequired
	}

	var identity core.Identity
	err := c.do(ctx, http.MethodGet, c.mePath, token, nil, &identity)
	if err != nil {
		var apiErr *core.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return nil, core.ErrSessionExpired
		}
		return nil, err
	}
	return &identity, nil
}

// VerifyEmail confirms a registration using the token from the
// verification email.
func (c *Client) VerifyEmail(ctx context.Context, verificationToken string) error {
	if verificationToken == "" {
		return core.ErrTokenRequired
	}
	body := map[string]string{"token": verificationToken}
	return c.do(ctx, http.MethodPost, c.authBase+"/verify-email", "", body, nil)
}

// do performs one JSON request/response cycle. Transport failures are
// normalized to ErrNetwork; 4xx/5xx responses become *APIError carrying
// the backend's message verbatim.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("backend request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", core.ErrNetwork, err)
	}

	c.log.Debug("backend request",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode >= 400 {
		return &core.APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts the human-readable message from an error
// envelope. The raw body is used as a fallback so the user still sees
// whatever the backend said.
func errorMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
