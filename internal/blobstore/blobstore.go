// Package blobstore abstracts the object store that holds file bytes.
// The file domain writes uploads through it and removes blobs on permanent
// deletion; metadata stays in the database.
package blobstore

import (
	"context"
	"io"
)

// Store is implemented by object-storage backends. Implementations must be
// safe for concurrent use.
type Store interface {
	// Upload writes the object at path and returns its public download URL.
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)

	// Delete removes the object at path. Deleting a missing object is not an
	// error.
	Delete(ctx context.Context, path string) error
}
