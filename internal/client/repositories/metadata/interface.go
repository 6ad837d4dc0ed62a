// Package metadata is the CLI's local key/value cache: confirmation tokens,
// host access tokens and the current event, kept across runs.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value of key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	// ListPrefix returns all entries whose key starts with prefix.
	ListPrefix(ctx context.Context, prefix string) (map[string]string, error)
}
