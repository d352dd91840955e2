package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"streamhaven/domain/model"
	"streamhaven/infrastructure/logger"
)

// subscriptionStateTTL bounds how stale a lock badge can be. Playback
// authorization never reads this cache; it always re-resolves.
const subscriptionStateTTL = 60 * time.Second

func NewCache(ctx context.Context, addr, username, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// ISubscriptionStateCache caches resolved subscription states for listing
// annotation. A miss (or an unavailable Redis) just means the caller resolves
// from the store.
type ISubscriptionStateCache interface {
	Get(ctx context.Context, viewerID string) (*model.SubscriptionState, error)
	Set(ctx context.Context, viewerID string, state model.SubscriptionState)
}

type SubscriptionStateCache struct {
	redisClient *redis.Client
}

func NewSubscriptionStateCache(redisClient *redis.Client) ISubscriptionStateCache {
	return &SubscriptionStateCache{redisClient: redisClient}
}

func (c *SubscriptionStateCache) Get(ctx context.Context, viewerID string) (*model.SubscriptionState, error) {
	if c.redisClient == nil || viewerID == "" {
		return nil, nil
	}
	raw, err := c.redisClient.Get(ctx, cacheKey(viewerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state model.SubscriptionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *SubscriptionStateCache) Set(ctx context.Context, viewerID string, state model.SubscriptionState) {
	if c.redisClient == nil || viewerID == "" {
		return
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := c.redisClient.Set(ctx, cacheKey(viewerID), payload, subscriptionStateTTL).Err(); err != nil {
		logger.GetLogger().WithField("viewer_id", viewerID).WithField("error", err).Warn("subscription state cache write failed")
	}
}

func cacheKey(viewerID string) string {
	return "subscription-state:" + viewerID
}
