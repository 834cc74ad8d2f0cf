// Package redis provides a go-redis backed identity cache so that
// multi-instance gateway deployments share resolved sessions.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tutorlink/authgate/core"
)

const keyPrefix = "authgate:identity:"

// Cache stores identities as JSON under the token hash with a TTL.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

var _ core.IdentityCache = (*Cache)(nil)

// New builds a cache on an existing client. A zero ttl defaults to five
// minutes, matching the in-memory cache.
func New(client *goredis.Client, ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, tokenHash string) (*core.Identity, error) {
	raw, err := c.client.Get(ctx, keyPrefix+tokenHash).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, core.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var identity core.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		// A corrupt entry behaves like a miss; the resolver will refill it.
		_ = c.client.Del(ctx, keyPrefix+tokenHash).Err()
		return nil, core.ErrCacheMiss
	}
	return &identity, nil
}

func (c *Cache) Set(ctx context.Context, tokenHash string, identity *core.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+tokenHash, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, tokenHash string) error {
	if err := c.client.Del(ctx, keyPrefix+tokenHash).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
