// Package redis owns the process-wide client shared by the spot-price cache
// and the idempotency key store.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// dialTimeout bounds the startup ping so a dead Redis fails boot instead of
// surfacing later as silent cache misses.
const dialTimeout = 5 * time.Second

var client *redis.Client

// Init parses a redis:// URL, connects and verifies the server answers. The
// password argument, when non-empty, overrides any password in the URL.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

// SetClient replaces the shared client. Tests point the package at a
// miniredis instance this way.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the shared client.
func GetClient() *redis.Client {
	return client
}

// Set stores a value under key for the given TTL.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get returns the value under key, or redis.Nil when absent.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes a key.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX claims key for the given TTL only if nothing holds it yet. The
// idempotency middleware uses this as its request lock.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
