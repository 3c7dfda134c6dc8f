package ports

import "context"

// IDField is the reserved identifier field of every stored document
const IDField = "_id"

// Document is a schema-less record: field name to scalar or array value
type Document map[string]interface{}

// Filter selects documents by field equality. A filter value matches a scalar
// field equal to it or an array field containing it. An empty filter matches all.
type Filter map[string]interface{}

// DocumentCollection defines the contract for a connected document-store collection
type DocumentCollection interface {
	Name() string
	Find(ctx context.Context, filter Filter) ([]Document, error)
	InsertOne(ctx context.Context, doc Document) (string, error)
	Ping(ctx context.Context) error
}
