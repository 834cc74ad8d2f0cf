package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tutorlink/authgate/core"
)

// Requirement: unset variables fall back to documented defaults.
func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"AUTHGATE_API_BASE_URL", "AUTHGATE_LISTEN_ADDR", "AUTHGATE_TOKEN_FILE",
		"AUTHGATE_TOKEN_PASSPHRASE", "AUTHGATE_REDIS_ADDR", "AUTHGATE_ROUTES_PATH",
		"AUTHGATE_CACHE_TTL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.ListenAddr != ":3000" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr should default empty, got %q", cfg.RedisAddr)
	}
}

// Requirement: environment overrides win, and bad durations fall back
// rather than fail.
func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTHGATE_API_BASE_URL", "https://api.tutorlink.io")
	t.Setenv("AUTHGATE_CACHE_TTL", "30s")

	cfg := Load()

	if cfg.APIBaseURL != "https://api.tutorlink.io" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}

	t.Setenv("AUTHGATE_CACHE_TTL", "not-a-duration")
	if got := Load().CacheTTL; got != 5*time.Minute {
		t.Errorf("bad duration: CacheTTL = %v, want fallback", got)
	}
}

func writeRoutes(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRoutes(t *testing.T) {
	path := writeRoutes(t, `
routes:
  - prefix: /dashboard
    roles: [STUDENT]
  - prefix: /tutor
    roles: [TUTOR]
  - prefix: /admin
    roles: [ADMIN]
  - prefix: /bookings
`)

	table, err := LoadRoutes(path)
	if err != nil {
		t.Fatalf("LoadRoutes: %v", err)
	}
	if len(table.Routes) != 4 {
		t.Fatalf("got %d rules, want 4", len(table.Routes))
	}
	if table.Routes[0].Roles[0] != core.RoleStudent {
		t.Errorf("first rule roles = %v", table.Routes[0].Roles)
	}
	if len(table.Routes[3].Roles) != 0 {
		t.Errorf("bookings rule should have empty allow-list")
	}
}

func TestLoadRoutesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"relative prefix", "routes:\n  - prefix: dashboard\n    roles: [STUDENT]\n"},
		{"unknown role", "routes:\n  - prefix: /dashboard\n    roles: [SUPERUSER]\n"},
		{"malformed yaml", "routes: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadRoutes(writeRoutes(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadRoutes(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// Requirement: the longest matching prefix decides, and unlisted paths
// are unprotected.
func TestRolesFor(t *testing.T) {
	table := &RouteTable{Routes: []RouteRule{
		{Prefix: "/tutor", Roles: []core.Role{core.RoleTutor}},
		{Prefix: "/tutor/admin", Roles: []core.Role{core.RoleAdmin}},
		{Prefix: "/bookings"},
	}}

	roles, ok := table.RolesFor("/tutor/admin/reports")
	if !ok || len(roles) != 1 || roles[0] != core.RoleAdmin {
		t.Errorf("longest prefix: roles = %v, ok = %v", roles, ok)
	}

	roles, ok = table.RolesFor("/tutor/schedule")
	if !ok || roles[0] != core.RoleTutor {
		t.Errorf("shorter prefix: roles = %v, ok = %v", roles, ok)
	}

	roles, ok = table.RolesFor("/bookings/42")
	if !ok || len(roles) != 0 {
		t.Errorf("any-authenticated rule: roles = %v, ok = %v", roles, ok)
	}

	if _, ok := table.RolesFor("/about"); ok {
		t.Error("unlisted path should be unprotected")
	}
}
