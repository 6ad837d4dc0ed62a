package blobstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobServer_ServesStoredBlob(t *testing.T) {
	m := NewMemoryStore("")
	require.NoError(t, m.Put(context.Background(), "local/abc.jpg", []byte("jpegdata"), "image/jpeg"))
	srv := NewBlobServer(":0", m, logging.Nop())

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/blobs/local/abc.jpg", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "jpegdata", string(body))
}

func TestBlobServer_NotFound(t *testing.T) {
	srv := NewBlobServer(":0", NewMemoryStore(""), logging.Nop())

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/blobs/local/missing.jpg", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBlobServer_Healthz(t *testing.T) {
	srv := NewBlobServer(":0", NewMemoryStore(""), logging.Nop())

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
