// Package repository contains the data access layer abstractions: the document store
// contract every backend implements and the generic repository handlers talk to.
// Implementations live in subpackages (mongo, postgres, memory) inside this directory.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"adoptapi/internal/model"
)

// Filter selects records by exact match on storage field names. A nil or empty filter matches everything.
type Filter map[string]any

// Fields is a partial record keyed by storage field name, merged into an existing record on update.
type Fields map[string]any

// UpdateResult reports the outcome of a partial update.
// ModifiedCount == 0 is a normal result: either nothing matched or nothing changed.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// Store is the document store adapter contract, uniform across entities.
// Persistence only, no business logic.
type Store[T any] interface {
	// Get returns the records matching filter in insertion order.
	Get(ctx context.Context, filter Filter) ([]T, error)

	// GetOne returns the first record matching filter, or nil (and no error) when none match.
	GetOne(ctx context.Context, filter Filter) (*T, error)

	// Create applies schema defaults, generates an id, validates and persists rec.
	// Returns the stored record; rec itself is left untouched.
	Create(ctx context.Context, rec *T) (*T, error)

	// CreateMany is the batch variant of Create. Empty input yields an empty result.
	CreateMany(ctx context.Context, recs []T) ([]T, error)

	// Update merges fields into the record identified by id.
	Update(ctx context.Context, id string, fields Fields) (*UpdateResult, error)

	// Delete removes the record identified by id and returns it, or nil when nothing matched.
	Delete(ctx context.Context, id string) (*T, error)
}

// EntityPtr constrains store implementations to pointer-to-entity types so they can assign
// generated ids and apply defaults on a generic T.
type EntityPtr[T any] interface {
	*T
	model.Entity
}

// Describe returns the collection name and unique fields declared by T.
func Describe[T any, P EntityPtr[T]]() (collection string, unique []string) {
	var zero T
	p := P(&zero)
	return p.CollectionName(), p.UniqueFields()
}

// PrepareInsert applies defaults, assigns a fresh ObjectID when missing and validates rec.
func PrepareInsert[T any, P EntityPtr[T]](rec *T) error {
	p := P(rec)
	p.ApplyDefaults()
	if p.ObjectID().IsZero() {
		p.SetObjectID(primitive.NewObjectID())
	}
	return Validate(rec)
}

// ParseID converts the string form of a store id into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &ValidationError{Field: "_id", Reason: "invalid id " + quote(id)}
	}
	return oid, nil
}
