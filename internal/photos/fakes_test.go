package photos

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"sync"
	"testing"

	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/google/uuid"
)

const testEventID = "0b6a3c5e-8a38-4d84-9a59-0c3a5a9e2f11"

type fakeStore struct {
	mu        sync.Mutex
	puts      int
	deletes   int
	putErr    error
	deleteErr error
	// block makes Put wait for the context to end.
	block bool
}

func (f *fakeStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	f.mu.Lock()
	f.puts++
	block, err := f.block, f.putErr
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeStore) URL(key string) string {
	return "https://s3.example.com/photos/" + key
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return f.deleteErr
}

type fakeMeta struct {
	mu         sync.Mutex
	rows       []*models.Photo
	lists      int
	inserts    int
	deletes    int
	captions   int
	saves      int
	savedIDs   []string
	listErr    error
	insertErr  error
	deleteErr  error
	captionErr error
	saveErr    error
	// afterList runs once the rows are read, before they are returned.
	afterList func()
	// afterInsert runs once a row is stored.
	afterInsert func()
}

func (f *fakeMeta) ListByEvent(ctx context.Context, eventID string) ([]*models.Photo, error) {
	f.mu.Lock()
	f.lists++
	rows, err, hook := clonePhotos(f.rows), f.listErr, f.afterList
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (f *fakeMeta) Insert(ctx context.Context, p *models.Photo) (*models.Photo, error) {
	f.mu.Lock()
	f.inserts++
	if f.insertErr != nil {
		f.mu.Unlock()
		return nil, f.insertErr
	}
	saved := p.Clone()
	saved.ID = uuid.NewString()
	f.rows = append(f.rows, saved)
	hook := f.afterInsert
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return saved.Clone(), nil
}

func (f *fakeMeta) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	return f.deleteErr
}

func (f *fakeMeta) UpdateCaption(ctx context.Context, id, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captions++
	return f.captionErr
}

func (f *fakeMeta) SavePositions(ctx context.Context, eventID string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	f.savedIDs = append([]string(nil), ids...)
	return f.saveErr
}

// noisyJPEG encodes a w×h image of random pixels, which keeps the JPEG large.
func noisyJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	rnd := rand.New(rand.NewSource(1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), uint8(rnd.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func smallPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
