package services

import (
	"context"

	"github.com/tutorlink/authgate/core"
	"github.com/tutorlink/authgate/pkg/crypto"
)

// Per-request resolution for gateway deployments: the route-guard
// middleware hands in the token it extracted from the request and gets
// back the identity the backend vouches for. Resolved identities are
// cached by token hash so hot routes do not hammer the backend.

// ResolveToken turns a bearer token into an identity: cache first, then
// the backend, then cache fill. The raw token never enters the cache,
// only its hash.
func (c *Controller) ResolveToken(ctx context.Context, rawToken string) (*core.Identity, error) {
	if rawToken == "" {
		return nil, core.ErrTokenRequired
	}

	tokenHash := hashToken(rawToken)

	if c.cache != nil {
		if identity, err := c.cache.Get(ctx, tokenHash); err == nil {
			return identity, nil
		}
		// Cache miss - fall through to the backend
	}

	identity, err := c.api.Session(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		// A failed cache fill costs a future round trip, nothing more
		_ = c.cache.Set(ctx, tokenHash, identity)
	}

	return identity, nil
}

func hashToken(rawToken string) string {
	return crypto.HashToken(rawToken)
}
