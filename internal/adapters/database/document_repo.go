package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"nosqlkit.app/internal/ports"
	"nosqlkit.app/pkg/errors"
)

// DocumentModel stores one schema-less document as a JSON body
type DocumentModel struct {
	ID         uint   `gorm:"primaryKey"`
	DocumentID string `gorm:"uniqueIndex;size:64;not null"`
	Collection string `gorm:"index;not null"`
	Body       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

func (DocumentModel) TableName() string {
	return "documents"
}

// DocumentFieldModel indexes one top-level scalar (or scalar array element)
// of a document so equality filters can run in SQL.
type DocumentFieldModel struct {
	ID          uint   `gorm:"primaryKey"`
	DocumentRef uint   `gorm:"index;not null"`
	Field       string `gorm:"index:idx_document_field_value;not null"`
	Value       string `gorm:"index:idx_document_field_value;not null"`
}

func (DocumentFieldModel) TableName() string {
	return "document_fields"
}

// AutoMigrate creates the document tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&DocumentModel{}, &DocumentFieldModel{}); err != nil {
		return errors.NewDatabaseError("failed to migrate document tables", err)
	}
	return nil
}

// DocumentRepositoryAdapter implements the DocumentCollection port using GORM
type DocumentRepositoryAdapter struct {
	db         *gorm.DB
	collection string
}

// NewDocumentRepositoryAdapter creates a collection handle over the documents tables
func NewDocumentRepositoryAdapter(db *gorm.DB, collection string) *DocumentRepositoryAdapter {
	return &DocumentRepositoryAdapter{db: db, collection: collection}
}

// Name returns the collection name
func (r *DocumentRepositoryAdapter) Name() string {
	return r.collection
}

// Find returns the documents matching filter in insertion order
func (r *DocumentRepositoryAdapter) Find(ctx context.Context, filter ports.Filter) ([]ports.Document, error) {
	query := r.db.WithContext(ctx).Where("collection = ?", r.collection)

	for field, value := range filter {
		if field == ports.IDField {
			query = query.Where("document_id = ?", fmt.Sprint(value))
			continue
		}

		encoded, ok := encodeIndexValue(value)
		if !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("unsupported filter value for field %q", field))
		}

		matching := r.db.Model(&DocumentFieldModel{}).
			Select("document_ref").
			Where("field = ? AND value = ?", field, encoded)
		query = query.Where("id IN (?)", matching)
	}

	var models []DocumentModel
	if err := query.Order("id asc").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("failed to find documents", err)
	}

	docs := make([]ports.Document, 0, len(models))
	for i := range models {
		doc, err := r.modelToDocument(&models[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// InsertOne persists doc and returns its identifier. A string _id supplied
// by the caller is kept, otherwise a UUID is generated.
func (r *DocumentRepositoryAdapter) InsertOne(ctx context.Context, doc ports.Document) (string, error) {
	if doc == nil {
		return "", errors.NewValidationError("document cannot be nil")
	}

	documentID := uuid.NewString()
	body := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k == ports.IDField {
			id, ok := v.(string)
			if !ok || id == "" {
				return "", errors.NewValidationError("_id must be a non-empty string")
			}
			documentID = id
			continue
		}
		body[k] = v
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", errors.NewValidationError("document is not serializable: " + err.Error())
	}

	// Index the normalized form so filters compare the same representation
	normalized, err := decodeBody(raw)
	if err != nil {
		return "", errors.NewValidationError("document is not serializable: " + err.Error())
	}

	model := &DocumentModel{
		DocumentID: documentID,
		Collection: r.collection,
		Body:       string(raw),
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		fields := indexFields(model.ID, normalized)
		if len(fields) == 0 {
			return nil
		}
		return tx.Create(&fields).Error
	})
	if err != nil {
		return "", errors.NewDatabaseError("failed to insert document", err)
	}

	return documentID, nil
}

// Ping verifies the database connection
func (r *DocumentRepositoryAdapter) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.NewConnectionError("failed to get underlying database connection", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.NewConnectionError("database ping failed", err)
	}
	return nil
}

// Close closes the underlying database connection
func (r *DocumentRepositoryAdapter) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.NewConnectionError("failed to get underlying database connection", err)
	}
	return sqlDB.Close()
}

// modelToDocument converts database model to a port document
func (r *DocumentRepositoryAdapter) modelToDocument(model *DocumentModel) (ports.Document, error) {
	doc, err := decodeBody([]byte(model.Body))
	if err != nil {
		return nil, errors.NewDatabaseError("stored document is corrupt", err)
	}
	doc[ports.IDField] = model.DocumentID
	return doc, nil
}

// decodeBody keeps numbers as json.Number so integers beyond 2^53 survive
func decodeBody(raw []byte) (ports.Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	doc := ports.Document{}
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func indexFields(ref uint, doc map[string]interface{}) []DocumentFieldModel {
	var fields []DocumentFieldModel
	add := func(field string, value interface{}) {
		if encoded, ok := encodeIndexValue(value); ok {
			fields = append(fields, DocumentFieldModel{DocumentRef: ref, Field: field, Value: encoded})
		}
	}

	for field, value := range doc {
		if elements, ok := value.([]interface{}); ok {
			for _, element := range elements {
				add(field, element)
			}
			continue
		}
		add(field, value)
	}
	return fields
}

// encodeIndexValue renders scalars as JSON so "1" and 1 stay distinct
func encodeIndexValue(value interface{}) (string, bool) {
	switch value.(type) {
	case string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		raw, err := json.Marshal(value)
		if err != nil {
			return "", false
		}
		return string(raw), true
	default:
		return "", false
	}
}
