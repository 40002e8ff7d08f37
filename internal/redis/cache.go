package redis

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ViewCache is a JSON-backed Redis cache for read model projections, bound to
// a view type T. Every entry lives under the cache's key prefix, addressed by
// the entity's numeric id. Pass ttl 0 for keys that should not expire.
type ViewCache[T any] struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewViewCache[T any](client *goredis.Client, prefix string, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl}
}

func (c *ViewCache[T]) key(id int64) string {
	return c.prefix + strconv.FormatInt(id, 10)
}

// Get retrieves and unmarshals the view for id.
// Returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, id int64) (*T, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals the view and stores it under id.
// Errors are logged rather than returned, a cache write miss is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, id int64, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("ViewCache: marshal error for key %s: %v", c.key(id), err)
		return
	}
	if err := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); err != nil {
		log.Printf("ViewCache: write error for key %s: %v", c.key(id), err)
	}
}

// Delete removes the view for id.
func (c *ViewCache[T]) Delete(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		log.Printf("ViewCache: delete error for key %s: %v", c.key(id), err)
	}
}
