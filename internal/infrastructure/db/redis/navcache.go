package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/csemotors/dealership/internal/core/domain"
)

const (
	navKey = "nav:classifications"
	navTTL = 5 * time.Minute
)

// NavCache caches the classification list that builds the navigation on
// every page, so browsing does not hit the store per request.
type NavCache struct {
	client *redis.Client
}

// NewNavCache creates a NavCache wrapping the given Redis client.
func NewNavCache(client *redis.Client) *NavCache {
	return &NavCache{client: client}
}

// Get returns the cached classification list. The second result is false on
// a cache miss.
func (n *NavCache) Get(ctx context.Context) ([]*domain.Classification, bool, error) {
	raw, err := n.client.Get(ctx, navKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("nav cache get: %w", err)
	}

	var classifications []*domain.Classification
	if err := json.Unmarshal(raw, &classifications); err != nil {
		return nil, false, fmt.Errorf("nav cache decode: %w", err)
	}
	return classifications, true, nil
}

// Set stores the classification list (expires after navTTL).
func (n *NavCache) Set(ctx context.Context, classifications []*domain.Classification) error {
	raw, err := json.Marshal(classifications)
	if err != nil {
		return fmt.Errorf("nav cache encode: %w", err)
	}
	return n.client.Set(ctx, navKey, raw, navTTL).Err()
}

// Invalidate drops the cached list; the next Nav call repopulates it.
func (n *NavCache) Invalidate(ctx context.Context) error {
	return n.client.Del(ctx, navKey).Err()
}
