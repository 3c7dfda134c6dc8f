// Package school queries and inserts school documents in a document collection.
package school

import (
	"context"
	"fmt"

	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
	"nosqlkit.app/pkg/validation"
)

// ListAll returns every document of coll in insertion order.
// An empty collection yields an empty slice.
func ListAll(ctx context.Context, coll ports.DocumentCollection) ([]ports.Document, error) {
	docs, err := coll.Find(ctx, ports.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", coll.Name(), asStoreError(err))
	}
	if docs == nil {
		docs = []ports.Document{}
	}
	return docs, nil
}

// SchoolsByTopic returns the documents whose topics contain topic exactly.
// Empty and blank topics are matched like any other string.
func SchoolsByTopic(ctx context.Context, coll ports.DocumentCollection, topic string) ([]ports.Document, error) {
	docs, err := coll.Find(ctx, ports.Filter{FieldTopics: topic})
	if err != nil {
		return nil, fmt.Errorf("find schools by topic %q: %w", topic, asStoreError(err))
	}
	if docs == nil {
		docs = []ports.Document{}
	}
	return docs, nil
}

// InsertSchool inserts fields as a new document and returns its identifier
func InsertSchool(ctx context.Context, coll ports.DocumentCollection, fields ports.Document) (string, error) {
	if len(fields) == 0 {
		return "", errors.NewValidationError("school must have at least one field")
	}

	doc := make(ports.Document, len(fields))
	for name, value := range fields {
		if !validation.IsNotEmpty(name) {
			return "", errors.NewValidationError("field name cannot be empty")
		}
		if name == ports.IDField {
			return "", errors.NewValidationError(fmt.Sprintf("field name %s is reserved", ports.IDField))
		}
		if !validation.IsValidFieldName(name) {
			return "", errors.NewValidationError(fmt.Sprintf("invalid field name %q", name))
		}
		doc[name] = value
	}

	id, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert school into %s: %w", coll.Name(), asStoreError(err))
	}
	return id, nil
}

// asStoreError keeps typed errors and classifies the rest as database failures
func asStoreError(err error) error {
	if errors.TypeOf(err) != errors.ErrorTypeUnknown {
		return err
	}
	return errors.NewDatabaseError("document store operation failed", err)
}
