// Package blobstore provides the object stores photos are written to: an
// S3-compatible durable store and a process-local ephemeral one.
package blobstore

import "context"

// Store writes, addresses and removes binary objects by key.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	// URL returns the address the object can be fetched from. It does not
	// check that the object exists.
	URL(key string) string
	Delete(ctx context.Context, key string) error
}
