// Package blobstore stores uploaded files either on local disk under the
// site's public directory or in an S3-compatible bucket, and hands back
// the public URL the site can serve them from.
package blobstore

import "context"

// Store is the destination for uploaded files.
type Store interface {
	// Put writes the named file and returns its public URL.
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	// Delete removes the named file. Deleting a missing file is not an
	// error.
	Delete(ctx context.Context, name string) error
}
