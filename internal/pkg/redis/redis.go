// Package redis holds the shared go-redis client. It is optional: callers
// treat a nil *Client as "no redis configured".
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// incrWindow bumps a counter and arms its expiry on the first hit, atomically.
var incrWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

type Client struct {
	rdb *redis.Client
}

// Connect parses a redis:// URL and pings the server before returning.
func Connect(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Wrap adapts an existing go-redis client.
func Wrap(rdb *redis.Client) *Client { return &Client{rdb: rdb} }

// IncrWindow counts one hit against key within a fixed window.
func (c *Client) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	return incrWindow.Run(ctx, c.rdb, []string{key}, window.Milliseconds()).Int64()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
