// Package images stores folder cover images. Files are written before the
// folder row is committed; callers remove the file again when the commit
// fails so the directory never accumulates orphans.
package images

import (
	"context"
	"io"
)

// Store persists uploaded image files under generated names.
type Store interface {
	// Save writes the image and returns the generated name
	// (a fresh uuid plus the original file extension).
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	// Open returns the stored image for reading. NotFoundError when missing.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes the stored image. Removing a missing image is not an error.
	Remove(ctx context.Context, name string) error
}
