package blobstore

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
)

// Blob is an object held by MemoryStore.
type Blob struct {
	Data        []byte
	ContentType string
}

// MemoryStore keeps objects in process memory. Nothing survives a restart and
// URLs are only valid while the process that issued them is running.
type MemoryStore struct {
	mu      sync.RWMutex
	blobs   map[string]Blob
	baseURL string
}

// NewMemoryStore creates an empty store. When baseURL is set, URLs point at
// the BlobServer mounted there; otherwise they are opaque "blob:" references.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		blobs:   make(map[string]Blob),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (m *MemoryStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := make([]byte, len(body))
	copy(data, body)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = Blob{Data: data, ContentType: contentType}
	return nil
}

func (m *MemoryStore) URL(key string) string {
	if m.baseURL == "" {
		return "blob:" + key
	}
	return m.baseURL + "/blobs/" + key
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Get returns the object stored under key or common.ErrorNotFound.
func (m *MemoryStore) Get(key string) (Blob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[key]
	if !ok {
		return Blob{}, common.ErrorNotFound
	}
	return b, nil
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
