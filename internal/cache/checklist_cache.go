package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "Renewals/internal/domain"

	"github.com/redis/go-redis/v9"
)

// keyPrefix matches the key format the browser clients historically used
// in localStorage, so cached entries stay recognizable in debugging.
const keyPrefix = "renewalTasks_"

// ChecklistCache caches normalized checklists in Redis, keyed per policy.
type ChecklistCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewChecklistCache returns a new ChecklistCache.
func NewChecklistCache(rdb *redis.Client, ttl time.Duration) *ChecklistCache {
	return &ChecklistCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached checklist for the policy key, or nil on miss.
// A cache entry that fails to parse is treated as a miss.
func (c *ChecklistCache) Get(ctx context.Context, policyKey string) (dom.Checklist, error) {
	b, err := c.rdb.Get(ctx, keyPrefix+policyKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cl dom.Checklist
	if err := json.Unmarshal(b, &cl); err != nil {
		return nil, nil
	}
	return cl, nil
}

// Set stores the checklist for the policy key. Only normalized data may
// be cached; the service enforces that.
func (c *ChecklistCache) Set(ctx context.Context, policyKey string, cl dom.Checklist) error {
	b, err := json.Marshal(cl)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+policyKey, b, c.ttl).Err()
}

// Invalidate removes the cached checklist for the policy key.
func (c *ChecklistCache) Invalidate(ctx context.Context, policyKey string) error {
	return c.rdb.Del(ctx, keyPrefix+policyKey).Err()
}
