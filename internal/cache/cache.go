package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "page:"

// Cache is a Redis-backed response cache. Mutating actions call
// Revalidate to drop every cached entry under a path; reads go through
// Get/Set. All operations are best effort: a cache failure is logged
// and treated as a miss, never surfaced to the caller.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a cache backed by the Redis at addr. An empty addr
// disables caching entirely; every method becomes a no-op.
func New(addr, password string, ttl time.Duration) *Cache {
	if addr == "" {
		slog.Info("response cache disabled, no Redis address configured")
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	slog.Info("response cache enabled", "addr", addr, "ttl", ttl)

	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached entry for path+query, or nil on a miss.
func (c *Cache) Get(ctx context.Context, path, query string) []byte {
	if c.client == nil {
		return nil
	}

	b, err := c.client.Get(ctx, entryKey(path, query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("cache get failed", "path", path, "error", err)
		}
		return nil
	}
	return b
}

// Set stores a response body for path+query.
func (c *Cache) Set(ctx context.Context, path, query string, body []byte) {
	if c.client == nil {
		return
	}

	err := c.client.Set(ctx, entryKey(path, query), body, c.ttl).Err()
	if err != nil {
		slog.Warn("cache set failed", "path", path, "error", err)
	}
}

// Revalidate drops every cached entry under path, query variants
// included. Fire and forget: failures are logged, never propagated.
func (c *Cache) Revalidate(ctx context.Context, path string) {
	if c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+path+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("cache revalidate scan failed", "path", path, "error", err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache revalidate delete failed", "path", path, "error", err)
		return
	}
	slog.Debug("cache revalidated", "path", path, "entries", len(keys))
}

func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func entryKey(path, query string) string {
	if query == "" {
		return keyPrefix + path
	}
	return keyPrefix + path + "?" + query
}
