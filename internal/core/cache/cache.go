// Package cache stores values under random keys in a key-value store and
// reads them back with optional decoding.
package cache

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/metrics"
	"nosqlkit.app/pkg/errors"
)

// Cache is bound to one key-value store for its lifetime
type Cache struct {
	store   ports.KeyValueStore
	metrics *metrics.CacheMetrics
}

// Option configures a Cache
type Option func(*Cache)

// WithMetrics records hits, misses and store latency
func WithMetrics(m *metrics.CacheMetrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// NewCache verifies the store is reachable and flushes it.
// Anything previously written to the store is lost.
func NewCache(ctx context.Context, store ports.KeyValueStore, opts ...Option) (*Cache, error) {
	if store == nil {
		return nil, errors.NewConfigurationError("key-value store cannot be nil", nil)
	}

	c := &Cache{store: store}
	for _, opt := range opts {
		opt(c)
	}

	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	if err := store.FlushDB(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// KeyValueStore returns the store the cache writes to
func (c *Cache) KeyValueStore() ports.KeyValueStore {
	return c.store
}

// Store writes data under a fresh UUID v4 key and returns the key
func (c *Cache) Store(ctx context.Context, data interface{}) (string, error) {
	value, err := encodeValue(data)
	if err != nil {
		return "", err
	}

	key := uuid.New().String()

	start := time.Now()
	err = c.store.Set(ctx, key, value)
	c.recordLatency("set", start)
	if err != nil {
		return "", err
	}

	return key, nil
}

// Get reads the value under key and applies decode to it.
// A missing key is reported with found == false and no error.
// A nil decode returns the raw bytes.
func (c *Cache) Get(ctx context.Context, key string, decode Decoder) (interface{}, bool, error) {
	start := time.Now()
	raw, found, err := c.store.Get(ctx, key)
	c.recordLatency("get", start)
	if err != nil {
		return nil, false, err
	}

	if !found {
		if c.metrics != nil {
			c.metrics.RecordMiss()
		}
		return nil, false, nil
	}
	if c.metrics != nil {
		c.metrics.RecordHit()
	}

	if decode == nil {
		return raw, true, nil
	}

	value, err := decode(raw)
	if err != nil {
		if errors.IsDecodeError(err) {
			return nil, true, err
		}
		return nil, true, errors.NewDecodeError("decoder failed", err)
	}
	return value, true, nil
}

// GetStr reads the value under key as UTF-8 text
func (c *Cache) GetStr(ctx context.Context, key string) (string, bool, error) {
	value, found, err := c.Get(ctx, key, DecodeString)
	if err != nil || !found {
		return "", found, err
	}
	return value.(string), true, nil
}

// GetInt reads the value under key as a base-10 integer
func (c *Cache) GetInt(ctx context.Context, key string) (int64, bool, error) {
	value, found, err := c.Get(ctx, key, DecodeInt)
	if err != nil || !found {
		return 0, found, err
	}
	return value.(int64), true, nil
}

// GetFloat reads the value under key as a floating point number
func (c *Cache) GetFloat(ctx context.Context, key string) (float64, bool, error) {
	value, found, err := c.Get(ctx, key, DecodeFloat)
	if err != nil || !found {
		return 0, found, err
	}
	return value.(float64), true, nil
}

// Close releases the store connection when the store owns one
func (c *Cache) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Cache) recordLatency(operation string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordLatency(operation, time.Since(start).Seconds())
	}
}
