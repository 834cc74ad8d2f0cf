// Package chi adapts the route guard to chi routers and plain net/http
// handler chains.
package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	chiv5 "github.com/go-chi/chi/v5"

	"github.com/tutorlink/authgate/core"
)

// TokenCookie is the cookie consulted when no Authorization header is
// present.
const TokenCookie = "authToken"

type contextKey struct{}

// SessionResolver turns a bearer token into an identity. Satisfied by
// *services.Controller.
type SessionResolver interface {
	ResolveToken(ctx context.Context, token string) (*core.Identity, error)
}

// Middleware applies the guard's decision to each request: authorized
// requests continue with the identity in the request context, everything
// else is redirected to the path the guard chose.
func Middleware(resolver SessionResolver, guard *core.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity *core.Identity
			if token := extractToken(r); token != "" {
				identity, _ = resolver.ResolveToken(r.Context(), token)
			}

			result := guard.Evaluate(core.Snapshot{Current: identity})
			if result.Decision != core.DecisionRender {
				http.Redirect(w, r, result.RedirectTo, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth is the JSON variant for API routes: it answers 401 instead
// of redirecting.
func RequireAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				unauthorized(w, core.ErrTokenRequired.Error())
				return
			}

			identity, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				unauthorized(w, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Protect mounts guarded page routes: everything registered through fn
// passes the guard first.
func Protect(r chiv5.Router, resolver SessionResolver, guard *core.Guard, fn func(chiv5.Router)) {
	r.Group(func(g chiv5.Router) {
		g.Use(Middleware(resolver, guard))
		fn(g)
	})
}

// IdentityFrom returns the identity stored by Middleware or RequireAuth.
func IdentityFrom(ctx context.Context) (*core.Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*core.Identity)
	return identity, ok && identity != nil
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
