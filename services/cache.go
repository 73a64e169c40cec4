package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const recipeListTTL = 5 * time.Minute

// RecipeCache is a read-through cache for recipe list responses. A nil
// client disables caching entirely; every method is safe to call.
type RecipeCache struct {
	client *redis.Client
}

func NewRecipeCache(client *redis.Client) *RecipeCache {
	return &RecipeCache{client: client}
}

func key(station string) string {
	if station == "" {
		return "recipes:list"
	}
	return "recipes:list:" + station
}

func (c *RecipeCache) Get(ctx context.Context, station string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key(station)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *RecipeCache) Set(ctx context.Context, station string, payload []byte) {
	if c.client == nil {
		return
	}
	c.client.Set(ctx, key(station), payload, recipeListTTL)
}

// Invalidate drops all recipe list entries; called after any recipe write.
func (c *RecipeCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, "recipes:list*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
