package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Client wraps the go-redis client used for the read model cache and the
// domain event streams.
type Client struct {
	*redis.Client
}

// Connect dials addr and verifies the connection with a ping before
// returning. The URL form redis://[:password@]host:port/db is accepted too.
func Connect(addr string) (*Client, error) {
	opts := &redis.Options{
		Addr:         addr,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	if parsed, err := redis.ParseURL(addr); err == nil {
		opts = parsed
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &Client{Client: rdb}, nil
}
