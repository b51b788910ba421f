package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	gameTextPrefix = "esake:game_text:"

	// GameTextTTL bounds how long rendered pages are reused. Finished games do
	// not change, the TTL only keeps the cache from growing without limit.
	GameTextTTL = 7 * 24 * time.Hour
)

// RedisCache stores rendered game page text
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// GameTextKey is the cache key of a game's rendered text.
func GameTextKey(gameID string) string {
	return gameTextPrefix + gameID
}

// GetGameText returns the cached text of a game. A miss is not an error.
func (rc *RedisCache) GetGameText(ctx context.Context, gameID string) (string, bool, error) {
	text, err := rc.client.Get(ctx, GameTextKey(gameID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading game text %s: %w", gameID, err)
	}
	return text, true, nil
}

// SetGameText caches the text of a game for GameTextTTL.
func (rc *RedisCache) SetGameText(ctx context.Context, gameID, text string) error {
	if err := rc.client.Set(ctx, GameTextKey(gameID), text, GameTextTTL).Err(); err != nil {
		return fmt.Errorf("caching game text %s: %w", gameID, err)
	}
	return nil
}

// DeleteGameText drops cached games so the next run renders them again.
func (rc *RedisCache) DeleteGameText(ctx context.Context, gameIDs ...string) error {
	keys := make([]string, len(gameIDs))
	for i, id := range gameIDs {
		keys[i] = GameTextKey(id)
	}
	return rc.client.Del(ctx, keys...).Err()
}
