// Package config loads gateway settings from the environment and the
// protected-route table from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tutorlink/authgate/core"
)

type Config struct {
	// APIBaseURL is the marketplace backend origin.
	APIBaseURL string

	// ListenAddr is the gateway's own bind address.
	ListenAddr string

	// TokenFile is where the durable bearer token lives; TokenPassphrase,
	// when set, seals it at rest.
	TokenFile       string
	TokenPassphrase string

	// RedisAddr enables the shared identity cache when non-empty.
	RedisAddr string

	// RoutesPath points at the YAML protected-route table.
	RoutesPath string

	// CacheTTL bounds how long a resolved identity is trusted without
	// asking the backend again.
	CacheTTL time.Duration
}

func Load() Config {
	return Config{
		APIBaseURL:      getenv("AUTHGATE_API_BASE_URL", "http://localhost:5000"),
		ListenAddr:      getenv("AUTHGATE_LISTEN_ADDR", ":3000"),
		TokenFile:       getenv("AUTHGATE_TOKEN_FILE", ".authgate/token.json"),
		TokenPassphrase: os.Getenv("AUTHGATE_TOKEN_PASSPHRASE"),
		RedisAddr:       os.Getenv("AUTHGATE_REDIS_ADDR"),
		RoutesPath:      getenv("AUTHGATE_ROUTES_PATH", "config/routes.yaml"),
		CacheTTL:        getenvDuration("AUTHGATE_CACHE_TTL", 5*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

// RouteRule maps a path prefix to the roles allowed behind it. An empty
// role list means any authenticated identity.
type RouteRule struct {
	Prefix string      `yaml:"prefix"`
	Roles  []core.Role `yaml:"roles"`
}

// RouteTable is the gateway's declarative protection map.
type RouteTable struct {
	Routes []RouteRule `yaml:"routes"`
}

// LoadRoutes reads and validates a route table.
func LoadRoutes(path string) (*RouteTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route table: %w", err)
	}

	var table RouteTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse route table: %w", err)
	}

	for i, rule := range table.Routes {
		if rule.Prefix == "" || !strings.HasPrefix(rule.Prefix, "/") {
			return nil, fmt.Errorf("route %d: prefix %q must start with /", i, rule.Prefix)
		}
		for _, role := range rule.Roles {
			if !role.Valid() {
				return nil, fmt.Errorf("route %d: unknown role %q", i, role)
			}
		}
	}
	return &table, nil
}

// RolesFor returns the allow-list of the longest matching prefix, and
// whether the path is protected at all.
func (t *RouteTable) RolesFor(path string) ([]core.Role, bool) {
	var (
		best    string
		roles   []core.Role
		matched bool
	)
	for _, rule := range t.Routes {
		if strings.HasPrefix(path, rule.Prefix) && len(rule.Prefix) > len(best) {
			best = rule.Prefix
			roles = rule.Roles
			matched = true
		}
	}
	return roles, matched
}
