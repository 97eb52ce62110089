package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"betsim/domain/entities"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const matchCacheTTL = 30 * time.Second

// MatchCache caches match fixtures in Redis so the read-heavy match
// endpoints don't hammer Postgres. Settlement invalidates the entry.
type MatchCache struct {
	client *redis.Client
}

// ConnectRedis creates and pings a Redis client
func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}

// NewMatchCache creates a match cache over an existing Redis client
func NewMatchCache(client *redis.Client) *MatchCache {
	return &MatchCache{client: client}
}

func matchKey(matchID int64) string {
	return fmt.Sprintf("match:%d", matchID)
}

// Get returns the cached match, or (nil, nil) on a miss
func (c *MatchCache) Get(ctx context.Context, matchID int64) (*entities.Match, error) {
	data, err := c.client.Get(ctx, matchKey(matchID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d from cache: %w", matchID, err)
	}

	var match entities.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached match %d: %w", matchID, err)
	}

	return &match, nil
}

// Set stores a match with the cache TTL
func (c *MatchCache) Set(ctx context.Context, match *entities.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match %d: %w", match.ID, err)
	}

	if err := c.client.Set(ctx, matchKey(match.ID), data, matchCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache match %d: %w", match.ID, err)
	}

	return nil
}

// Invalidate drops the cached match, typically after settlement
func (c *MatchCache) Invalidate(ctx context.Context, matchID int64) {
	if err := c.client.Del(ctx, matchKey(matchID)).Err(); err != nil {
		log.WithFields(log.Fields{
			"matchID": matchID,
			"error":   err,
		}).Warn("Failed to invalidate match cache entry")
	}
}
