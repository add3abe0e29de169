// Package model contains the domain entities persisted in the document store.
// Storage (bson) and JSON field names are kept identical so that filters and partial
// updates can be expressed with the same keys at every layer.
package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Entity is implemented by every persisted record. Stores use it to derive the
// collection name, unique keys, generated identifiers and schema defaults.
type Entity interface {
	// CollectionName returns the name of the collection (or table) holding the records.
	CollectionName() string
	// UniqueFields lists storage field names that must be unique across the collection.
	UniqueFields() []string
	// ObjectID returns the record identifier; zero when not yet persisted.
	ObjectID() primitive.ObjectID
	// SetObjectID assigns the store-generated identifier.
	SetObjectID(id primitive.ObjectID)
	// ApplyDefaults fills schema defaults before validation.
	ApplyDefaults()
}
