package ports

import "context"

// KeyValueStore defines the contract for the key-value store behind the cache
// and its instrumentation. Get reports a missing key with found == false.
type KeyValueStore interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Incr(ctx context.Context, key string) (int64, error)
	// RPushPair appends to two lists as one atomic step. Neither list
	// changes when either key holds a non-list value.
	RPushPair(ctx context.Context, firstKey, firstValue, secondKey, secondValue string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	FlushDB(ctx context.Context) error
	Ping(ctx context.Context) error
}
