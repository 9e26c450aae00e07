package parks

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"parkscout/models"

	"github.com/redis/go-redis/v9"
)

// RefCache holds the activity/topic reference listings between fetches.
// Entries expire on their own or through an explicit Invalidate trigger
// (the ?refresh=1 query parameter).
type RefCache interface {
	Get(ctx context.Context, category string) ([]models.RefItem, bool)
	Put(ctx context.Context, category string, items []models.RefItem)
	Invalidate(ctx context.Context, category string)
}

const refCacheTTL = 12 * time.Hour

type redisRefCache struct {
	conn *redis.Client
}

// NewRedisRefCache returns a RefCache backed by Redis, keyed by category.
func NewRedisRefCache(conn *redis.Client) RefCache {
	return &redisRefCache{conn: conn}
}

func refKey(category string) string {
	return "refdata:" + category
}

func (c *redisRefCache) Get(ctx context.Context, category string) ([]models.RefItem, bool) {
	raw, err := c.conn.Get(ctx, refKey(category)).Result()
	if err != nil {
		return nil, false
	}
	var items []models.RefItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("Bad cached %s listing, dropping: %v", category, err)
		c.conn.Del(ctx, refKey(category))
		return nil, false
	}
	return items, true
}

func (c *redisRefCache) Put(ctx context.Context, category string, items []models.RefItem) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("Failed to marshal %s listing: %v", category, err)
		return
	}
	if err := c.conn.Set(ctx, refKey(category), data, refCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache %s listing: %v", category, err)
	}
}

func (c *redisRefCache) Invalidate(ctx context.Context, category string) {
	if err := c.conn.Del(ctx, refKey(category)).Err(); err != nil {
		log.Printf("Failed to invalidate %s listing: %v", category, err)
	}
}
