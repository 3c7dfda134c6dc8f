package cache

import (
	"context"
	"io"

	"nosqlkit.app/internal/core/instrument"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/metrics"
)

// Operation names under which cache calls are counted and recorded
const (
	StoreOperation    = "Cache.Store"
	GetStrOperation   = "Cache.GetStr"
	GetIntOperation   = "Cache.GetInt"
	GetFloatOperation = "Cache.GetFloat"
)

// Lookup is the result of a typed read
type Lookup[T any] struct {
	Value T
	Found bool
}

// String renders the looked up value, or nil when the key was absent
func (l Lookup[T]) String() string {
	if !l.Found {
		return "nil"
	}
	return instrument.RenderOutput(l.Value, nil)
}

// InstrumentedOptions selects which cache operations are instrumented
type InstrumentedOptions struct {
	// RecordGets also counts and records typed reads
	RecordGets bool
}

// InstrumentedCache counts and records calls of a Cache into its own store
type InstrumentedCache struct {
	cache    *Cache
	store    instrument.Operation[interface{}, string]
	getStr   instrument.Operation[string, Lookup[string]]
	getInt   instrument.Operation[string, Lookup[int64]]
	getFloat instrument.Operation[string, Lookup[float64]]
}

// NewInstrumentedCache wraps Store, and optionally the typed reads, with
// Prometheus observation, call counting and call history
func NewInstrumentedCache(c *Cache, opts InstrumentedOptions) *InstrumentedCache {
	kv := c.KeyValueStore()

	ic := &InstrumentedCache{
		cache: c,
		store: instrument.Chain[interface{}, string](c.Store,
			metrics.WithObserve[interface{}, string](StoreOperation),
			instrument.WithCount[interface{}, string](kv, StoreOperation),
			instrument.WithHistory[interface{}, string](kv, StoreOperation),
		),
		getStr:   lookup(c.GetStr),
		getInt:   lookup(c.GetInt),
		getFloat: lookup(c.GetFloat),
	}

	if opts.RecordGets {
		ic.getStr = instrumentRead(kv, GetStrOperation, ic.getStr)
		ic.getInt = instrumentRead(kv, GetIntOperation, ic.getInt)
		ic.getFloat = instrumentRead(kv, GetFloatOperation, ic.getFloat)
	}

	return ic
}

// Cache returns the wrapped cache
func (ic *InstrumentedCache) Cache() *Cache {
	return ic.cache
}

// Store writes data under a fresh key and records the call
func (ic *InstrumentedCache) Store(ctx context.Context, data interface{}) (string, error) {
	return ic.store(ctx, data)
}

// Get delegates to the wrapped cache without instrumentation
func (ic *InstrumentedCache) Get(ctx context.Context, key string, decode Decoder) (interface{}, bool, error) {
	return ic.cache.Get(ctx, key, decode)
}

// GetStr reads the value under key as UTF-8 text
func (ic *InstrumentedCache) GetStr(ctx context.Context, key string) (string, bool, error) {
	result, err := ic.getStr(ctx, key)
	return result.Value, result.Found, err
}

// GetInt reads the value under key as a base-10 integer
func (ic *InstrumentedCache) GetInt(ctx context.Context, key string) (int64, bool, error) {
	result, err := ic.getInt(ctx, key)
	return result.Value, result.Found, err
}

// GetFloat reads the value under key as a floating point number
func (ic *InstrumentedCache) GetFloat(ctx context.Context, key string) (float64, bool, error) {
	result, err := ic.getFloat(ctx, key)
	return result.Value, result.Found, err
}

// Replay writes the recorded trace of operation
func (ic *InstrumentedCache) Replay(ctx context.Context, operation string, w io.Writer) error {
	return instrument.Replay(ctx, ic.cache.KeyValueStore(), operation, w)
}

// Record loads the recorded calls of operation
func (ic *InstrumentedCache) Record(ctx context.Context, operation string) (*instrument.Record, error) {
	return instrument.LoadRecord(ctx, ic.cache.KeyValueStore(), operation)
}

func lookup[T any](read func(context.Context, string) (T, bool, error)) instrument.Operation[string, Lookup[T]] {
	return func(ctx context.Context, key string) (Lookup[T], error) {
		value, found, err := read(ctx, key)
		return Lookup[T]{Value: value, Found: found}, err
	}
}

func instrumentRead[T any](kv ports.KeyValueStore, name string, op instrument.Operation[string, Lookup[T]]) instrument.Operation[string, Lookup[T]] {
	return instrument.Chain(op,
		metrics.WithObserve[string, Lookup[T]](name),
		instrument.WithCount[string, Lookup[T]](kv, name),
		instrument.WithHistory[string, Lookup[T]](kv, name),
	)
}
