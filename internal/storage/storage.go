// Package storage holds the object storage used for pet images and user documents.
// Implementations stream content and never touch local disk.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Key prefixes by attachment kind.
const (
	PetImagesPrefix     = "pets"
	UserDocumentsPrefix = "documents"
)

// PutOptions describe an upload. Size is -1 when unknown.
type PutOptions struct {
	Size         int64
	ContentType  string
	OriginalName string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage is an S3-compatible object store.
type Storage interface {
	// Put uploads r under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (ObjectInfo, error)
	// Get streams the object stored under key. Callers close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
}

// NewKey builds a collision-free object key under prefix, keeping the extension of filename.
func NewKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	return path.Join(prefix, uuid.NewString()+ext)
}
