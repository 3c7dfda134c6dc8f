package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"nosqlkit.app/internal/config"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
)

// Collection is a document collection whose connection the caller owns
type Collection interface {
	ports.DocumentCollection
	Close(ctx context.Context) error
}

// OpenCollection connects to the configured document store and returns a handle
func OpenCollection(ctx context.Context, cfg *config.DocumentsConfig) (Collection, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("documents config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.DocumentStoreSQLite:
		return openGormCollection(sqlite.Open(cfg.SQLite.Path), cfg.Collection)
	case config.DocumentStorePostgres:
		return openGormCollection(postgres.Open(cfg.Postgres.GetDSN()), cfg.Collection)
	case config.DocumentStoreMongo:
		return openMongoCollection(ctx, &cfg.Mongo, cfg.Collection)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported document store type: %s", cfg.Type.String()), nil)
	}
}

func openGormCollection(dialector gorm.Dialector, collection string) (Collection, error) {
	slog.Info("Initializing document database connection...", "dialect", dialector.Name())

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, errors.NewConnectionError("failed to connect to database", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	slog.Info("Document database ready", "collection", collection)
	return NewDocumentRepositoryAdapter(db, collection), nil
}

func openMongoCollection(ctx context.Context, cfg *config.MongoConfig, collection string) (Collection, error) {
	slog.Info("Connecting to MongoDB...", "database", cfg.Database)

	timeout := time.Duration(cfg.ConnectTimeout) * time.Second
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout))
	if err != nil {
		return nil, errors.NewConnectionError("failed to connect to mongodb", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.NewConnectionError("failed to reach mongodb", err)
	}

	slog.Info("MongoDB connection established", "collection", collection)
	return NewMongoCollectionAdapter(client.Database(cfg.Database).Collection(collection)), nil
}
