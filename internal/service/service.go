// Package service holds the use cases that span more than one repository or collaborator:
// seeding, media attachments and login. Plain CRUD goes straight from handlers to repositories.
package service

import (
	"io"

	"github.com/pkg/errors"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidParams      = errors.New("invalid parameters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageUnavailable = errors.New("object storage is not configured")
	ErrReaderNil          = errors.New("reader is nil")
)

// Upload is one file received from a client.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}
