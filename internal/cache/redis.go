package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pet-catalog-api/internal/config"
	"github.com/pet-catalog-api/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// tagsKey holds the JSON-encoded alphabetical tag listing
const tagsKey = "pet-catalog:tags:all"

// RedisTagCache caches the tag listing in redis
type RedisTagCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRedisClient builds a pooled client from config
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// NewRedisTagCache wraps client; entries expire after ttl
func NewRedisTagCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisTagCache {
	return &RedisTagCache{
		client: client,
		ttl:    ttl,
		log:    log.With().Str("component", "tag_cache").Logger(),
	}
}

// Ping verifies the connection
func (c *RedisTagCache) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// GetTags returns the cached listing; ok is false on a miss
func (c *RedisTagCache) GetTags(ctx context.Context) ([]models.Tag, bool, error) {
	raw, err := c.client.Get(ctx, tagsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var tags []models.Tag
	if err := json.Unmarshal(raw, &tags); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next fill
		c.log.Warn().Err(err).Msg("Discarding undecodable tag cache entry")
		return nil, false, nil
	}
	return tags, true, nil
}

// SetTags stores the listing with the configured TTL
func (c *RedisTagCache) SetTags(ctx context.Context, tags []models.Tag) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	if err := c.client.Set(ctx, tagsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateTags drops the cached listing
func (c *RedisTagCache) InvalidateTags(ctx context.Context) error {
	if err := c.client.Del(ctx, tagsKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	c.log.Debug().Msg("Tag cache invalidated")
	return nil
}

// Close releases the client's connections
func (c *RedisTagCache) Close() error {
	return c.client.Close()
}

// Noop is used when no redis address is configured. Every read is a miss.
type Noop struct{}

func (Noop) GetTags(ctx context.Context) ([]models.Tag, bool, error) { return nil, false, nil }
func (Noop) SetTags(ctx context.Context, tags []models.Tag) error    { return nil }
func (Noop) InvalidateTags(ctx context.Context) error                { return nil }
