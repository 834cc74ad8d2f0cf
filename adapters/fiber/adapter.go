// Package fiber adapts the route guard to gofiber applications serving
// the marketplace frontend.
package fiber

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/tutorlink/authgate/core"
)

// identityLocal is the ctx.Locals key the resolved identity is stored
// under for downstream handlers.
const identityLocal = "identity"

// TokenCookie is the cookie consulted when no Authorization header is
// present, matching the browser client's storage key.
const TokenCookie = "authToken"

// SessionResolver turns a bearer token into an identity. Satisfied by
// *services.Controller.
type SessionResolver interface {
	ResolveToken(ctx context.Context, token string) (*core.Identity, error)
}

type Adapter struct {
	resolver SessionResolver
}

func New(resolver SessionResolver) *Adapter {
	return &Adapter{resolver: resolver}
}

// Protect builds a middleware that applies the guard's decision to each
// request: authorized requests pass through with the identity stored in
// context, everything else is redirected to the path the guard chose.
func (a *Adapter) Protect(guard *core.Guard) fiber.Handler {
	return func(c fiber.Ctx) error {
		var identity *core.Identity
		if token := extractToken(c); token != "" {
			// A stale or rejected token is the same as no token.
			identity, _ = a.resolver.ResolveToken(c.Context(), token)
		}

		result := guard.Evaluate(core.Snapshot{Current: identity})
		if result.Decision != core.DecisionRender {
			return c.Redirect().To(result.RedirectTo)
		}

		c.Locals(identityLocal, identity)
		return c.Next()
	}
}

// RequireAuth is the JSON variant for API routes: instead of redirecting
// it answers 401 so XHR callers can handle the failure themselves.
func (a *Adapter) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": core.ErrTokenRequired.Error(),
			})
		}

		identity, err := a.resolver.ResolveToken(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}

		c.Locals(identityLocal, identity)
		return c.Next()
	}
}

// Identity returns the identity stored by Protect or RequireAuth.
func Identity(c fiber.Ctx) (*core.Identity, bool) {
	identity, ok := c.Locals(identityLocal).(*core.Identity)
	return identity, ok && identity != nil
}

// extractToken checks the Authorization header (Bearer token) first,
// then falls back to the session cookie.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies(TokenCookie)
}
