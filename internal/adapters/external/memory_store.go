package external

import (
	"context"
	"strconv"
	"sync"

	"nosqlkit.app/pkg/errors"
)

// MemoryStoreAdapter implements the KeyValueStore port in process memory.
// Strings and lists live in separate maps, as they do in Redis.
type MemoryStoreAdapter struct {
	strings map[string][]byte
	lists   map[string][]string
	mutex   sync.RWMutex
}

// NewMemoryStoreAdapter creates a new in-memory store adapter
func NewMemoryStoreAdapter() *MemoryStoreAdapter {
	return &MemoryStoreAdapter{
		strings: make(map[string][]byte),
		lists:   make(map[string][]string),
	}
}

// Set writes a copy of value under key
func (m *MemoryStoreAdapter) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.NewValidationError("key cannot be empty")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.lists, key)
	m.strings[key] = append([]byte(nil), value...)
	return nil
}

// Get reads the bytes stored under key
func (m *MemoryStoreAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.NewValidationError("key cannot be empty")
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if _, isList := m.lists[key]; isList {
		return nil, false, errors.NewValidationError("key holds a list, not a value")
	}

	value, ok := m.strings[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Incr increments the decimal integer stored under key, starting from zero
func (m *MemoryStoreAdapter) Incr(ctx context.Context, key string) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, isList := m.lists[key]; isList {
		return 0, errors.NewValidationError("key holds a list, not a value")
	}

	var current int64
	if raw, ok := m.strings[key]; ok {
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, errors.NewDecodeError("value is not an integer", err)
		}
		current = n
	}

	current++
	m.strings[key] = []byte(strconv.FormatInt(current, 10))
	return current, nil
}

// RPushPair appends to both lists while holding the write lock.
// Neither list changes when either key holds a value.
func (m *MemoryStoreAdapter) RPushPair(ctx context.Context, firstKey, firstValue, secondKey, secondValue string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, key := range []string{firstKey, secondKey} {
		if _, isString := m.strings[key]; isString {
			return errors.NewValidationError("key holds a value, not a list")
		}
	}

	m.lists[firstKey] = append(m.lists[firstKey], firstValue)
	m.lists[secondKey] = append(m.lists[secondKey], secondValue)
	return nil
}

// LRange returns list elements between start and stop inclusive.
// Negative indexes count from the end of the list.
func (m *MemoryStoreAdapter) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	list := m.lists[key]
	n := int64(len(list))

	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop {
		return []string{}, nil
	}

	result := make([]string, stop-start+1)
	copy(result, list[start:stop+1])
	return result, nil
}

// FlushDB removes every key
func (m *MemoryStoreAdapter) FlushDB(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.strings = make(map[string][]byte)
	m.lists = make(map[string][]string)
	return nil
}

// Ping always succeeds for the in-memory store
func (m *MemoryStoreAdapter) Ping(ctx context.Context) error {
	return nil
}
