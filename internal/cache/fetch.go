package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/habitloop/habitloop-backend/internal/clients/redis"
	"github.com/habitloop/habitloop-backend/internal/platform/logger"
)

// GetOrFetch returns the cached value for key, or computes it and caches the
// result. Cache absence or failure degrades to direct computation; cache
// errors are logged, never returned.
func GetOrFetch[T any](ctx context.Context, c redis.Cache, log *logger.Logger, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if c != nil {
		raw, hit, err := c.Get(ctx, key)
		if err != nil {
			log.Warn("Cache read failed, falling back to store", "key", key, "error", err)
		} else if hit {
			var cached T
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
			log.Warn("Cache entry not decodable, falling back to store", "key", key)
		}
	}

	val, err := fetch()
	if err != nil {
		return val, err
	}

	if c != nil {
		if raw, err := json.Marshal(val); err == nil {
			if err := c.SetEx(ctx, key, ttl, string(raw)); err != nil {
				log.Warn("Cache write failed", "key", key, "error", err)
			}
		}
	}
	return val, nil
}
