// Package cache keeps fetched product records in Redis so repeated matching
// runs against the same listings do not hammer the marketplaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ZaryabShah/matching-score/internal/config"
	"github.com/ZaryabShah/matching-score/internal/models"
)

type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRecordCache connects to Redis. The cache is best-effort: callers treat
// a nil *RecordCache as "caching disabled".
func NewRecordCache(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*RecordCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RecordCache{
		client: client,
		ttl:    cfg.CacheTTL,
		logger: logger.With("component", "record_cache"),
	}, nil
}

func recordKey(platform, id string) string {
	return fmt.Sprintf("record:%s:%s", platform, id)
}

// Get returns the cached record, or false on a miss. Decode and transport
// failures count as misses.
func (c *RecordCache) Get(ctx context.Context, platform, id string) (models.Record, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, recordKey(platform, id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", "platform", platform, "id", id, "error", err)
		}
		return nil, false
	}

	rec, err := models.RecordFromJSON(data)
	if err != nil {
		c.logger.Warn("cache entry corrupt", "platform", platform, "id", id, "error", err)
		return nil, false
	}
	return rec, true
}

// Set stores the record with the configured TTL. Failures are logged, not
// returned: a broken cache must not fail a matching run.
func (c *RecordCache) Set(ctx context.Context, platform, id string, rec models.Record) {
	if c == nil {
		return
	}

	data, err := json.Marshal(rec)
	if err != nil {
		c.logger.Warn("cache encode failed", "platform", platform, "id", id, "error", err)
		return
	}

	if err := c.client.Set(ctx, recordKey(platform, id), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "platform", platform, "id", id, "error", err)
	}
}

func (c *RecordCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
