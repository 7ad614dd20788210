package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"petclinic/internal/vet/models"
)

// DefaultKey holds the whole vet list; it is small and read as one unit.
const DefaultKey = "petclinic:vets"

// RedisCache stores the vet list as one JSON value with a TTL.
type RedisCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// New creates a RedisCache. A non-positive ttl stores entries without expiry.
func New(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, key: DefaultKey, ttl: ttl}
}

// Get returns the cached list. found is false on a miss; err is set only when
// Redis could not answer or the entry is corrupt.
func (c *RedisCache) Get(ctx context.Context) (vets []*models.Vet, found bool, err error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached vets: %w", err)
	}
	if err := json.Unmarshal(raw, &vets); err != nil {
		return nil, false, fmt.Errorf("decode cached vets: %w", err)
	}
	return vets, true, nil
}

func (c *RedisCache) Set(ctx context.Context, vets []*models.Vet) error {
	raw, err := json.Marshal(vets)
	if err != nil {
		return fmt.Errorf("encode vets: %w", err)
	}
	if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached vets: %w", err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("invalidate cached vets: %w", err)
	}
	return nil
}
