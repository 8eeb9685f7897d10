// Package cache keeps the latest display snapshot per tracker in Redis so
// polling consumers read without contending on tracker locks. Caching is
// best effort: when no Redis URL is configured every operation is a no-op
// and readers fall through to the live state.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type StateCache struct {
	client  *redis.Client
	ttl     time.Duration
	log     *zap.Logger
	enabled bool
}

// New connects to Redis when redisURL is non-empty. Connection failures
// disable caching instead of failing startup.
func New(redisURL string, ttl time.Duration, log *zap.Logger) *StateCache {
	c := &StateCache{ttl: ttl, log: log}
	if redisURL == "" {
		log.Info("redis URL not provided, state caching disabled")
		return c
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("failed to parse redis URL, state caching disabled", zap.Error(err))
		return c
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("failed to connect to redis, state caching disabled", zap.Error(err))
		return c
	}

	c.client = client
	c.enabled = true
	log.Info("redis state cache initialized")
	return c
}

func (c *StateCache) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func stateKey(trackerID string) string {
	return "pettrack:state:" + trackerID
}

// SetState stores the snapshot under the tracker's key with the cache TTL.
func (c *StateCache) SetState(ctx context.Context, trackerID string, state any) error {
	if !c.enabled {
		return nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, stateKey(trackerID), data, c.ttl).Err()
}

// GetState loads a cached snapshot into dest. A cache miss (or disabled
// cache) returns redis.Nil.
func (c *StateCache) GetState(ctx context.Context, trackerID string, dest any) error {
	if !c.enabled {
		return redis.Nil
	}
	data, err := c.client.Get(ctx, stateKey(trackerID)).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// DeleteState drops the cached snapshot, used when a tracker is removed.
func (c *StateCache) DeleteState(ctx context.Context, trackerID string) error {
	if !c.enabled {
		return nil
	}
	return c.client.Del(ctx, stateKey(trackerID)).Err()
}
