package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
)

// MongoCollectionAdapter implements the DocumentCollection port on a MongoDB collection
type MongoCollectionAdapter struct {
	coll *mongo.Collection
}

// NewMongoCollectionAdapter wraps an already-connected collection
func NewMongoCollectionAdapter(coll *mongo.Collection) *MongoCollectionAdapter {
	return &MongoCollectionAdapter{coll: coll}
}

// Name returns the collection name
func (m *MongoCollectionAdapter) Name() string {
	return m.coll.Name()
}

// Find runs a find command with filter and returns the documents in natural order
func (m *MongoCollectionAdapter) Find(ctx context.Context, filter ports.Filter) ([]ports.Document, error) {
	query := bson.M{}
	for field, value := range filter {
		query[field] = toObjectIDIfHex(field, value)
	}

	cursor, err := m.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}}))
	if err != nil {
		return nil, m.wrapError("failed to find documents", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, m.wrapError("failed to read documents", err)
	}

	docs := make([]ports.Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, ports.Document(normalizeBSON(r).(map[string]interface{})))
	}
	return docs, nil
}

// InsertOne inserts doc and returns the generated identifier as a string
func (m *MongoCollectionAdapter) InsertOne(ctx context.Context, doc ports.Document) (string, error) {
	if doc == nil {
		return "", errors.NewValidationError("document cannot be nil")
	}

	payload := bson.M{}
	for k, v := range doc {
		payload[k] = v
	}

	result, err := m.coll.InsertOne(ctx, payload)
	if err != nil {
		return "", m.wrapError("failed to insert document", err)
	}

	return idToString(result.InsertedID), nil
}

// Ping checks the server behind the collection
func (m *MongoCollectionAdapter) Ping(ctx context.Context) error {
	if err := m.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return errors.NewConnectionError("mongodb ping failed", err)
	}
	return nil
}

// Close disconnects the client that owns the collection
func (m *MongoCollectionAdapter) Close(ctx context.Context) error {
	if err := m.coll.Database().Client().Disconnect(ctx); err != nil {
		return errors.NewConnectionError("failed to disconnect from mongodb", err)
	}
	return nil
}

func (m *MongoCollectionAdapter) wrapError(message string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return errors.NewConnectionError(message, err)
	}
	return errors.NewDatabaseError(message, err)
}

func toObjectIDIfHex(field string, value interface{}) interface{} {
	if field != ports.IDField {
		return value
	}
	if s, ok := value.(string); ok {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			return oid
		}
	}
	return value
}

func idToString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

// normalizeBSON turns driver types into plain maps, slices and strings
func normalizeBSON(value interface{}) interface{} {
	switch v := value.(type) {
	case bson.M:
		out := make(map[string]interface{}, len(v))
		for k, inner := range v {
			out[k] = normalizeBSON(inner)
		}
		if id, ok := out[ports.IDField]; ok {
			out[ports.IDField] = idToString(id)
		}
		return out
	case bson.D:
		out := make(map[string]interface{}, len(v))
		for _, e := range v {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case bson.A:
		out := make([]interface{}, len(v))
		for i, inner := range v {
			out[i] = normalizeBSON(inner)
		}
		return out
	case primitive.ObjectID:
		return v.Hex()
	default:
		return v
	}
}
