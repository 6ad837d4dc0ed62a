package grpc

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/dmitrijs2005/eventkeeper/internal/blobstore"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/photos"
	"github.com/dmitrijs2005/eventkeeper/internal/rsvp"
	"github.com/google/uuid"
)

const testEventID = "8c3f5a2e-1d4b-4c6e-9a7f-2b1e0d9c8a76"

type fakeEvents struct {
	createOut *models.Event
	createErr error
	getOut    *models.Event
	getErr    error
	token     string
	loginErr  error
}

func (f *fakeEvents) Create(context.Context, string, bool, bool, []byte) (*models.Event, error) {
	return f.createOut, f.createErr
}
func (f *fakeEvents) Get(context.Context, string) (*models.Event, error) {
	return f.getOut, f.getErr
}
func (f *fakeEvents) HostLogin(context.Context, string, []byte) (string, error) {
	return f.token, f.loginErr
}

type fakeGuests struct {
	mu     sync.Mutex
	byTok  map[string]*models.Guest
	insErr error
	updErr error
	listed []*models.Guest

	submitted rsvp.Form
	submitErr error
}

func newFakeGuests() *fakeGuests {
	return &fakeGuests{byTok: map[string]*models.Guest{}}
}

func (f *fakeGuests) FindByToken(_ context.Context, _ string, token string) (*models.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.byTok[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return g, nil
}

func (f *fakeGuests) Insert(_ context.Context, g *models.Guest) (*models.Guest, error) {
	if f.insErr != nil {
		return nil, f.insErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *g
	c.ID = uuid.NewString()
	f.byTok[c.ConfirmationToken] = &c
	return &c, nil
}

func (f *fakeGuests) Update(_ context.Context, g *models.Guest) (*models.Guest, error) {
	if f.updErr != nil {
		return nil, f.updErr
	}
	c := *g
	return &c, nil
}

func (f *fakeGuests) List(context.Context, string) ([]*models.Guest, error) {
	return f.listed, nil
}

func (f *fakeGuests) Submit(_ context.Context, e *models.Event, token string, form rsvp.Form) (*models.Guest, error) {
	f.submitted = form
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &models.Guest{ID: "g1", EventID: e.ID, Name: form.Name, ConfirmationToken: token}, nil
}

func newTestRegistry() *photos.Registry {
	local := blobstore.NewMemoryStore("")
	return photos.NewRegistry(func(eventID string) *photos.Manager {
		return photos.NewManager(eventID, nil, nil, local, photos.WithLogger(logging.Nop()))
	})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}
