package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tutorlink/authgate/core"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, server
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, core.ErrBaseURLRequired) {
		t.Errorf("New() error = %v, want ErrBaseURLRequired", err)
	}
}

// Requirement: a successful sign-in parses the {user, token} payload and
// every outbound request carries a correlation ID.
func TestClient_SignIn(t *testing.T) {
	var gotRequestID, gotContentType string

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/sign-in" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")

		var input core.SignInInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		if input.Email != "alice@example.com" {
			t.Errorf("backend received email %q", input.Email)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"id": "u1", "name": "Alice", "email": input.Email, "role": "STUDENT"},
			"token": "session-token",
		})
	}))

	result, err := c.SignIn(context.Background(), core.SignInInput{Email: "alice@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if result.Identity.ID != "u1" || result.Identity.Role != core.RoleStudent {
		t.Errorf("SignIn() identity = %+v", result.Identity)
	}
	if result.Token != "session-token" {
		t.Errorf("SignIn() token = %q", result.Token)
	}
	if gotRequestID == "" {
		t.Error("request should carry X-Request-ID")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

// Requirement: a 401 on sign-in is an authentication rejection, not a
// generic API error.
func TestClient_SignIn_InvalidCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))

	_, err := c.SignIn(context.Background(), core.SignInInput{Email: "a@b.c", Password: "nope"})
	if !errors.Is(err, core.ErrInvalidCredentials) {
		t.Errorf("SignIn() error = %v, want ErrInvalidCredentials", err)
	}
}

// Requirement: non-401 backend failures surface the backend's message
// verbatim.
func TestClient_SignUp_SurfacesBackendMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
	}))

	err := c.SignUp(context.Background(), core.SignUpInput{
		Name: "Alice", Email: "a@b.c", Password: "pw", Role: core.RoleStudent,
	})

	var apiErr *core.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("SignUp() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Errorf("APIError.Status = %d, want 409", apiErr.Status)
	}
	if apiErr.Message != "Email already registered" {
		t.Errorf("APIError.Message = %q, want backend message verbatim", apiErr.Message)
	}
}

// Requirement: an unreachable backend is a network error, retry-able and
// distinguishable from a rejection.
func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listens anymore

	c, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.SignIn(context.Background(), core.SignInInput{Email: "a@b.c", Password: "pw"})
	if !errors.Is(err, core.ErrNetwork) {
		t.Errorf("SignIn() against dead server error = %v, want ErrNetwork", err)
	}
}

// Requirement: the session fetch presents the bearer token and maps a
// 401 to ErrSessionExpired.
func TestClient_Session(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/users/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "name": "Alice", "email": "a@b.c", "role": "TUTOR"})
	}))

	identity, err := c.Session(context.Background(), "good-token")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if identity.Role != core.RoleTutor {
		t.Errorf("Session() role = %q, want TUTOR", identity.Role)
	}

	if _, err := c.Session(context.Background(), "stale-token"); !errors.Is(err, core.ErrSessionExpired) {
		t.Errorf("Session() with rejected token error = %v, want ErrSessionExpired", err)
	}

	if _, err := c.Session(context.Background(), ""); !errors.Is(err, core.ErrTokenRequired) {
		t.Errorf("Session() with empty token error = %v, want ErrTokenRequired", err)
	}
}

// Requirement: the tutor and booking wrappers are passthroughs: path,
// method and bearer token go out, typed payloads come back.
func TestClient_Marketplace(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/v1/tutors":
			if got := r.URL.Query().Get("subject"); got != "math" {
				t.Errorf("subject query = %q, want math", got)
			}
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": "t1", "userId": "u2", "subjects": []string{"math"}, "hourlyRate": 40.0,
					"user": map[string]any{"id": "u2", "name": "Bob", "email": "bob@x.y"}},
			})
		case "POST /api/v1/bookings":
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Error("booking creation should carry the bearer token")
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "b1", "tutorId": "t1", "status": "CONFIRMED"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	tutors, err := c.Tutors(context.Background(), "math")
	if err != nil {
		t.Fatalf("Tutors() error = %v", err)
	}
	if len(tutors) != 1 || tutors[0].User.Name != "Bob" {
		t.Errorf("Tutors() = %+v", tutors)
	}

	booking, err := c.CreateBooking(context.Background(), "tok", CreateBookingInput{TutorID: "t1"})
	if err != nil {
		t.Fatalf("CreateBooking() error = %v", err)
	}
	if booking.Status != BookingConfirmed {
		t.Errorf("CreateBooking() status = %q, want CONFIRMED", booking.Status)
	}
}

// Requirement: the request/response cycle is observable at debug level,
// including transport failures.
func TestClient_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "name": "A", "email": "a@b.c", "role": "STUDENT"})
	}))
	t.Cleanup(server.Close)

	c, err := New(Config{BaseURL: server.URL, Logger: logger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.Session(context.Background(), "tok"); err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if !strings.Contains(buf.String(), "backend request") || !strings.Contains(buf.String(), "status=200") {
		t.Errorf("debug log missing request record: %q", buf.String())
	}

	buf.Reset()
	server.Close()
	if _, err := c.Session(context.Background(), "tok"); !errors.Is(err, core.ErrNetwork) {
		t.Fatalf("Session() against dead server error = %v", err)
	}
	if !strings.Contains(buf.String(), "backend request failed") {
		t.Errorf("debug log missing failure record: %q", buf.String())
	}
}

// Requirement: an error body without a JSON envelope still reaches the
// user as text.
func TestErrorMessage_Fallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"message field", `{"message":"nope"}`, "nope"},
		{"error field", `{"error":"bad input"}`, "bad input"},
		{"plain text", "Bad Gateway", "Bad Gateway"},
		{"empty body", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := errorMessage([]byte(test.raw)); got != test.want {
				t.Errorf("errorMessage(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}
