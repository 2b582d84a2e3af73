package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TransferCache implements ports.TransferCache using Redis. It is a
// fast-path replay check only; the durable dedupe lives in the ledger
// table's unique client reference.
type TransferCache struct {
	client *goredis.Client
	prefix string
}

// NewTransferCache creates a new Redis-backed transfer replay cache.
func NewTransferCache(client *goredis.Client) *TransferCache {
	return &TransferCache{
		client: client,
		prefix: "transfer:",
	}
}

// Get retrieves a cached transfer result by client reference.
// Returns nil, nil if the reference has not been seen.
func (c *TransferCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis transfer get: %w", err)
	}
	return val, nil
}

// Set stores a completed transfer result under its client reference with TTL.
func (c *TransferCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis transfer set: %w", err)
	}
	return nil
}
