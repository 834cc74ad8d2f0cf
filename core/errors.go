package core

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password") // 401 from sign-in
	ErrSessionExpired     = errors.New("session expired")           // 401 from session fetch
	ErrNetwork            = errors.New("auth service unreachable")  // transport failure, retry-able
	ErrAuthInFlight       = errors.New("another auth call is in flight")
	ErrTokenRequired      = errors.New("missing session token")
)

// Validation errors (caught client-side before any network call)
var (
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("role must be STUDENT or TUTOR")
)

// Cache errors
var (
	ErrCacheMiss = errors.New("identity not found in cache")
)

// Config errors (caller-side wiring)
var (
	ErrBaseURLRequired    = errors.New("backend base URL is required")
	ErrAPIRequired        = errors.New("auth API client is required")
	ErrStoreRequired      = errors.New("session store is required")
	ErrTokenStoreRequired = errors.New("token store is required")
)

// APIError carries a backend-reported failure. The Message field is the
// human-readable text from the response envelope and is surfaced to the
// user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
