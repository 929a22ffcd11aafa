package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/platefull/recipe-catalog/internal/core/domain"
)

const listingTTL = 5 * time.Minute

// ListingCache is a read-side cache for recipe listings, keyed per owner
// ("" caches the public seed listing). Entries expire after listingTTL and
// are invalidated explicitly on every write touching the owner, so a writer
// re-reading its own listing always hits the store.
// Key format: listings:<environment>:<owner|seed>
type ListingCache struct {
	client *redis.Client
	env    domain.Environment
}

// NewListingCache creates a ListingCache wrapping the given Redis client.
func NewListingCache(client *redis.Client, env domain.Environment) *ListingCache {
	return &ListingCache{client: client, env: env}
}

// Get returns the cached listing for owner and whether one was present.
func (c *ListingCache) Get(ctx context.Context, owner string) ([]*domain.Recipe, bool, error) {
	raw, err := c.client.Get(ctx, c.key(owner)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("listing cache get: %w", err)
	}

	var recipes []*domain.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil, false, fmt.Errorf("listing cache decode: %w", err)
	}
	return recipes, true, nil
}

// Set stores the listing for owner with the cache TTL.
func (c *ListingCache) Set(ctx context.Context, owner string, recipes []*domain.Recipe) error {
	raw, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("listing cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(owner), raw, listingTTL).Err()
}

// Invalidate drops the cached listing for owner.
func (c *ListingCache) Invalidate(ctx context.Context, owner string) error {
	return c.client.Del(ctx, c.key(owner)).Err()
}

func (c *ListingCache) key(owner string) string {
	if owner == "" {
		owner = "seed"
	}
	return fmt.Sprintf("listings:%s:%s", c.env, owner)
}
