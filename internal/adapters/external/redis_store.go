package external

import (
	"context"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"nosqlkit.app/internal/config"
	"nosqlkit.app/pkg/errors"
)

// RedisStoreAdapter implements the KeyValueStore port using Redis
type RedisStoreAdapter struct {
	client *redis.Client
}

// NewRedisStoreAdapter creates a new Redis store adapter and verifies the connection
func NewRedisStoreAdapter(config *config.RedisConfig) (*RedisStoreAdapter, error) {
	if config == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  time.Duration(config.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewConnectionError("failed to connect to Redis", err)
	}

	return &RedisStoreAdapter{
		client: client,
	}, nil
}

// Set writes value under key with no expiry
func (r *RedisStoreAdapter) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.NewValidationError("key cannot be empty")
	}

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.NewConnectionError("redis set operation failed", err)
	}

	return nil
}

// Get reads the raw bytes stored under key
func (r *RedisStoreAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.NewValidationError("key cannot be empty")
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, wrapCommandError("redis get operation failed", err)
	}

	return val, true, nil
}

// Incr atomically increments the integer stored under key
func (r *RedisStoreAdapter) Incr(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, wrapCommandError("redis incr operation failed", err)
	}
	return n, nil
}

// pushPairScript checks both key types before appending to either list
var pushPairScript = redis.NewScript(`
for i = 1, 2 do
	local kind = redis.call("TYPE", KEYS[i]).ok
	if kind ~= "none" and kind ~= "list" then
		return redis.error_reply("WRONGTYPE Operation against a key holding the wrong kind of value")
	end
end
redis.call("RPUSH", KEYS[1], ARGV[1])
redis.call("RPUSH", KEYS[2], ARGV[2])
return 2
`)

// RPushPair appends one value to each of two lists in a single script run
func (r *RedisStoreAdapter) RPushPair(ctx context.Context, firstKey, firstValue, secondKey, secondValue string) error {
	err := pushPairScript.Run(ctx, r.client, []string{firstKey, secondKey}, firstValue, secondValue).Err()
	if err != nil {
		return wrapCommandError("redis paired rpush failed", err)
	}
	return nil
}

// LRange returns the list elements between start and stop inclusive
func (r *RedisStoreAdapter) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	values, err := r.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, wrapCommandError("redis lrange operation failed", err)
	}
	return values, nil
}

// FlushDB removes all keys from the Redis database
func (r *RedisStoreAdapter) FlushDB(ctx context.Context) error {
	if err := r.client.FlushDB(ctx).Err(); err != nil {
		return errors.NewConnectionError("redis flush operation failed", err)
	}
	return nil
}

// Ping checks if Redis connection is alive
func (r *RedisStoreAdapter) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.NewConnectionError("Redis ping failed", err)
	}
	return nil
}

// Close closes the Redis client connection
func (r *RedisStoreAdapter) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.NewConnectionError("failed to close Redis connection", err)
	}
	return nil
}

// wrapCommandError classifies error replies from the server by their prefix.
// Anything else is treated as a connection failure.
func wrapCommandError(message string, err error) error {
	if replyErr, ok := err.(redis.Error); ok {
		reply := replyErr.Error()
		switch {
		case strings.Contains(reply, "WRONGTYPE"):
			return errors.NewValidationError(message + ": " + reply)
		case strings.Contains(reply, "not an integer"):
			return errors.NewDecodeError(message, err)
		}
	}
	return errors.NewConnectionError(message, err)
}
