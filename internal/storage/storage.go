// Package storage is the persistence adapter used by the services. A Store
// maps collection names to sets of documents; FileStore and MongoStore are
// interchangeable implementations sharing the same bson field mapping.
package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	CollectionRequests   = "requests"
	CollectionUsers      = "users"
	CollectionVolunteers = "volunteers"
)

var (
	ErrNotFound  = errors.New("storage: record not found")
	ErrDuplicate = errors.New("storage: duplicate record")
)

// Document is the schemaless form of a record as it sits in a collection.
type Document = map[string]interface{}

// Record is anything that can be inserted. The adapter owns id assignment
// and hands the new id back through SetID before the record is written.
type Record interface {
	SetID(id string)
}

type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection operations decode into out the way the mongo driver does:
// out is a pointer to a struct for single records and a pointer to a slice
// for LoadAll. Mutations are durable once they return.
type Collection interface {
	LoadAll(ctx context.Context, out interface{}) error
	Insert(ctx context.Context, record Record) (string, error)
	FindByID(ctx context.Context, id string, out interface{}) error
	FindOne(ctx context.Context, field string, value interface{}, out interface{}) error
	UpdateByID(ctx context.Context, id string, patch Document, out interface{}) error
	Count(ctx context.Context) (int, error)
}

func toDocument(record interface{}) (Document, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var doc Document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return doc, nil
}

func decodeDocument(doc Document, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

func decodeDocuments(docs []Document, out interface{}) error {
	if docs == nil {
		docs = []Document{}
	}
	raw, err := bson.Marshal(bson.M{"items": docs})
	if err != nil {
		return fmt.Errorf("decode records: %w", err)
	}
	if err := bson.Raw(raw).Lookup("items").Unmarshal(out); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}
	return nil
}
