package app

import (
	"context"
	"fmt"
	"log/slog"

	"nosqlkit.app/internal/adapters/database"
	"nosqlkit.app/internal/adapters/external"
	"nosqlkit.app/internal/adapters/infrastructure"
	"nosqlkit.app/internal/config"
	"nosqlkit.app/internal/core/cache"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/metrics"
	pkglogger "nosqlkit.app/pkg/logger"
)

// DependencyContainer owns the store connections and the ports built on them
type DependencyContainer struct {
	config     *config.Config
	collection database.Collection
	cache      *cache.Cache
	metrics    *metrics.CacheMetrics
	instrument *cache.InstrumentedCache
	ports      *ports.ApplicationPorts
}

func NewDependencyContainer(ctx context.Context, cfg *config.Config) (*DependencyContainer, error) {
	container := &DependencyContainer{config: cfg}

	if err := container.initializeDocumentStore(ctx); err != nil {
		return nil, fmt.Errorf("initialize document store: %w", err)
	}

	if err := container.initializeCache(ctx); err != nil {
		_ = container.Cleanup(ctx)
		return nil, fmt.Errorf("initialize cache: %w", err)
	}

	container.initializePorts()
	return container, nil
}

func (c *DependencyContainer) initializeDocumentStore(ctx context.Context) error {
	slog.Info("Initializing document store...", "type", c.config.Documents.Type.String())

	collection, err := database.OpenCollection(ctx, &c.config.Documents)
	if err != nil {
		return fmt.Errorf("open collection: %w", err)
	}

	c.collection = collection
	slog.Info("Document store initialized", "collection", collection.Name())
	return nil
}

func (c *DependencyContainer) initializeCache(ctx context.Context) error {
	slog.Info("Initializing key-value store...", "type", c.config.Cache.Type.String())

	store, err := external.NewStoreFactory().CreateKeyValueStore(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create key-value store: %w", err)
	}

	c.metrics = metrics.NewCacheMetrics(c.config.Cache.Type.String())
	kvCache, err := cache.NewCache(ctx, store, cache.WithMetrics(c.metrics))
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	c.cache = kvCache
	c.instrument = cache.NewInstrumentedCache(kvCache, cache.InstrumentedOptions{
		RecordGets: c.config.Cache.RecordGets,
	})

	slog.Info("Cache initialized",
		"type", c.config.Cache.Type.String(),
		"record_gets", c.config.Cache.RecordGets)
	return nil
}

func (c *DependencyContainer) initializePorts() {
	componentLogger := (&pkglogger.Logger{Logger: slog.Default()}).WithFields(map[string]interface{}{
		"document_store": c.config.Documents.Type.String(),
		"collection":     c.config.Documents.Collection,
	})
	logger := infrastructure.NewSlogLoggerAdapter(componentLogger.Logger)
	store := c.cache.KeyValueStore()

	health := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		DocumentStoreChecker: infrastructure.NewDocumentStoreHealthChecker(c.collection, c.config.Documents.Type.String()),
		KeyValueStoreChecker: infrastructure.NewKeyValueStoreHealthChecker(store, c.config.Cache.Type.String()).
			WithStats(c.metrics.GetStats),
	})

	c.ports = &ports.ApplicationPorts{
		Collection:    infrastructure.NewCollectionLoggingDecorator(c.collection, logger),
		KeyValueStore: store,
		Logger:        logger,
		Health:        health,
	}
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Cache returns the instrumented cache shared by all callers
func (c *DependencyContainer) Cache() *cache.InstrumentedCache {
	return c.instrument
}

// Cleanup closes the document store and key-value store connections
func (c *DependencyContainer) Cleanup(ctx context.Context) error {
	var firstErr error
	if c.collection != nil {
		if err := c.collection.Close(ctx); err != nil {
			slog.Warn("Error closing document store", "error", err)
			firstErr = err
		}
	}
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			slog.Warn("Error closing key-value store", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// NewTestConfig returns a configuration backed by a sqlite file and the in-memory store
func NewTestConfig(sqlitePath string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Log:    config.LogConfig{Level: "debug"},
		Documents: config.DocumentsConfig{
			Type:       config.DocumentStoreSQLite,
			Collection: "school",
			SQLite:     config.SQLiteConfig{Path: sqlitePath},
		},
		Cache: config.CacheConfig{
			Type:       config.CacheTypeMemory,
			RecordGets: true,
		},
	}
}
