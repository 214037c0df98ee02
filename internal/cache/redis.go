// Package cache provides the Redis-backed space-access decision cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"spacehub/backend/internal/platform/authz"
)

// NewRedisClient connects to Redis using the given URL and verifies the
// connection with a ping.
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// DecisionCache stores successful access decisions in Redis with a bounded
// TTL. Implements authz.DecisionCache.
type DecisionCache struct {
	client *redis.Client
}

// NewDecisionCache returns a DecisionCache over the given client.
func NewDecisionCache(client *redis.Client) *DecisionCache {
	return &DecisionCache{client: client}
}

func decisionKey(spaceID, userID, permission string) string {
	return fmt.Sprintf("authz:space:%s:user:%s:perm:%s", spaceID, userID, permission)
}

// GetDecision returns the cached decision, or (nil, nil) on a miss.
func (c *DecisionCache) GetDecision(ctx context.Context, spaceID, userID, permission string) (*authz.Decision, error) {
	val, err := c.client.Get(ctx, decisionKey(spaceID, userID, permission)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var d authz.Decision
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, fmt.Errorf("unmarshal cached decision: %w", err)
	}
	return &d, nil
}

// SetDecision stores the decision with the given TTL.
func (c *DecisionCache) SetDecision(ctx context.Context, spaceID, userID, permission string, d *authz.Decision, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	if err := c.client.Set(ctx, decisionKey(spaceID, userID, permission), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
