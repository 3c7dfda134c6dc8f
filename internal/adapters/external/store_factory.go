package external

import (
	"fmt"

	"nosqlkit.app/internal/config"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
)

// StoreFactory builds the key-value store selected by CACHE_TYPE
type StoreFactory struct{}

func NewStoreFactory() *StoreFactory {
	return &StoreFactory{}
}

func (f *StoreFactory) CreateKeyValueStore(cfg *config.CacheConfig) (ports.KeyValueStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryStoreAdapter(), nil
	case config.CacheTypeRedis:
		store, err := NewRedisStoreAdapter(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
