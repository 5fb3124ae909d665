package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Read-through cache for hot GET endpoints. Keys follow the
// "resource:id" scheme (orders:42, invoices:7, orders:list) and every
// mutation invalidates the keys it touches. If Redis is unavailable the
// client stays nil and all operations degrade to no-ops.

const defaultTTL = 5 * time.Minute

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Key builds a cache key from resource name and id
func Key(resource string, id int) string {
	return fmt.Sprintf("%s:%d", resource, id)
}

// ListKey builds the cache key for a resource's list endpoint
func ListKey(resource string) string {
	return resource + ":list"
}

// Get returns the cached payload for a key, if present
func Get(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a payload under a key with the default TTL
func Set(ctx context.Context, key string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, defaultTTL)
}

// Invalidate removes the given keys after a mutation
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateResource removes the id key and the list key for a resource
func InvalidateResource(ctx context.Context, resource string, id int) {
	Invalidate(ctx, Key(resource, id), ListKey(resource))
}
