package cache

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"stylekart/internal/metrics"
)

// failOpen absorbs every backend failure at the adapter boundary: a failed
// Get is a miss, a failed write is logged and swallowed. Callers above this
// wrapper never see a cache error — the cache is best-effort, never
// authoritative.
type failOpen struct {
	inner    Store
	logger   zerolog.Logger
	recorder *metrics.Recorder
}

// NewFailOpen wraps a Store with the fail-open policy and hit/miss/error
// accounting. recorder may be nil.
func NewFailOpen(inner Store, logger zerolog.Logger, recorder *metrics.Recorder) Store {
	return &failOpen{
		inner:    inner,
		logger:   logger.With().Str("component", "cache").Logger(),
		recorder: recorder,
	}
}

// entityOf extracts the namespace from a key for metric labels.
func entityOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "unknown"
}

func (c *failOpen) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok, err := c.inner.Get(ctx, key)
	entity := entityOf(key)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		c.recorder.ObserveCache(entity, "get", metrics.CacheError)
		return nil, false, nil
	}
	if ok {
		c.recorder.ObserveCache(entity, "get", metrics.CacheHit)
	} else {
		c.recorder.ObserveCache(entity, "get", metrics.CacheMiss)
	}
	return value, ok, nil
}

func (c *failOpen) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, value, ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache set failed, skipping")
		c.recorder.ObserveCache(entityOf(key), "set", metrics.CacheError)
		return nil
	}
	c.recorder.ObserveCache(entityOf(key), "set", metrics.CacheOK)
	return nil
}

func (c *failOpen) Delete(ctx context.Context, key string) error {
	if err := c.inner.Delete(ctx, key); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache delete failed, skipping")
		c.recorder.ObserveCache(entityOf(key), "delete", metrics.CacheError)
		return nil
	}
	c.recorder.ObserveCache(entityOf(key), "delete", metrics.CacheOK)
	return nil
}

func (c *failOpen) DeleteByPrefix(ctx context.Context, prefix string) error {
	if err := c.inner.DeleteByPrefix(ctx, prefix); err != nil {
		c.logger.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation sweep failed, skipping")
		c.recorder.ObserveCache(entityOf(prefix), "invalidate", metrics.CacheError)
		return nil
	}
	c.recorder.ObserveCache(entityOf(prefix), "invalidate", metrics.CacheOK)
	return nil
}

func (c *failOpen) Close() {
	c.inner.Close()
}
