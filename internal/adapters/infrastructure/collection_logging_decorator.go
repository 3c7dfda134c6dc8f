package infrastructure

import (
	"context"
	"time"

	"nosqlkit.app/internal/ports"
)

// CollectionLoggingDecorator decorates a document collection with structured logging
type CollectionLoggingDecorator struct {
	collection ports.DocumentCollection
	logger     ports.Logger
}

// NewCollectionLoggingDecorator creates a new logging decorator for document collections
func NewCollectionLoggingDecorator(collection ports.DocumentCollection, logger ports.Logger) ports.DocumentCollection {
	return &CollectionLoggingDecorator{
		collection: collection,
		logger:     logger,
	}
}

// Name returns the wrapped collection name
func (d *CollectionLoggingDecorator) Name() string {
	return d.collection.Name()
}

// Find wraps the query with structured logging
func (d *CollectionLoggingDecorator) Find(ctx context.Context, filter ports.Filter) ([]ports.Document, error) {
	d.logger.Debug("Document query started",
		ports.F("collection", d.collection.Name()),
		ports.F("filter", filter),
		ports.F("event", "find"))

	startTime := time.Now()
	docs, err := d.collection.Find(ctx, filter)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Document query failed",
			ports.F("collection", d.collection.Name()),
			ports.F("event", "find_error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Document query completed",
		ports.F("collection", d.collection.Name()),
		ports.F("event", "find_success"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("count", len(docs)))

	return docs, nil
}

// InsertOne wraps the insert with structured logging
func (d *CollectionLoggingDecorator) InsertOne(ctx context.Context, doc ports.Document) (string, error) {
	startTime := time.Now()
	id, err := d.collection.InsertOne(ctx, doc)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Document insert failed",
			ports.F("collection", d.collection.Name()),
			ports.F("event", "insert_error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return "", err
	}

	d.logger.Info("Document inserted",
		ports.F("collection", d.collection.Name()),
		ports.F("event", "insert_success"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("id", id))

	return id, nil
}

// Ping delegates to the wrapped collection
func (d *CollectionLoggingDecorator) Ping(ctx context.Context) error {
	return d.collection.Ping(ctx)
}
