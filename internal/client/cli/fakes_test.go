package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/api"
	"github.com/dmitrijs2005/eventkeeper/internal/client/client"
	"github.com/dmitrijs2005/eventkeeper/internal/client/config"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/stretchr/testify/require"
)

const testEventID = "5d1c0f7e-3b0a-4a51-9d2e-6f1f2a7c9b10"

var fixedTime = time.Date(2026, 6, 20, 15, 30, 0, 0, time.UTC)

// fakeBackend is an in-memory client.Client.
type fakeBackend struct {
	client.Client

	mu       sync.Mutex
	events   map[string]*models.Event
	passcode string
	guests   map[string]*models.Guest
	photos   []*models.Photo
	token    string
	closed   bool

	inserts, updates int
	updateErr        error
	uploadErr        error
	lastCaption      string
	lastReorder      []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		events: map[string]*models.Event{
			testEventID: {ID: testEventID, Name: "Ann & Bob", HasCeremony: true, HasReception: true, CreatedAt: fixedTime},
		},
		passcode: "letmein",
		guests:   map[string]*models.Guest{},
	}
}

func (f *fakeBackend) Close() error { f.closed = true; return nil }

func (f *fakeBackend) SetAccessToken(token string) { f.token = token }

func (f *fakeBackend) requireHost() error {
	if f.token != "host-token" {
		return client.ErrUnauthorized
	}
	return nil
}

func (f *fakeBackend) CreateEvent(_ context.Context, name string, ceremony, reception bool, passcode []byte) (*models.Event, error) {
	e := &models.Event{ID: "11111111-2222-3333-4444-555555555555", Name: name, HasCeremony: ceremony, HasReception: reception, CreatedAt: fixedTime}
	f.events[e.ID] = e
	f.passcode = string(passcode)
	return e, nil
}

func (f *fakeBackend) GetEvent(_ context.Context, id string) (*models.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *e
	return &c, nil
}

func (f *fakeBackend) HostLogin(_ context.Context, id string, passcode []byte) (string, error) {
	if _, ok := f.events[id]; !ok || string(passcode) != f.passcode {
		return "", client.ErrUnauthorized
	}
	return "host-token", nil
}

func (f *fakeBackend) FindByToken(_ context.Context, eventID, token string) (*models.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.guests[eventID+"/"+token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *g
	return &c, nil
}

func (f *fakeBackend) Insert(_ context.Context, g *models.Guest) (*models.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	c := *g
	c.ID = "guest-1"
	f.guests[g.EventID+"/"+g.ConfirmationToken] = &c
	out := c
	return &out, nil
}

func (f *fakeBackend) Update(_ context.Context, g *models.Guest) (*models.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		err := f.updateErr
		f.updateErr = nil
		return nil, err
	}
	f.updates++
	c := *g
	f.guests[g.EventID+"/"+g.ConfirmationToken] = &c
	out := c
	return &out, nil
}

func (f *fakeBackend) ListGuests(_ context.Context, eventID string) ([]*models.Guest, error) {
	if err := f.requireHost(); err != nil {
		return nil, err
	}
	var out []*models.Guest
	for _, g := range f.guests {
		if g.EventID == eventID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListPhotos(_ context.Context, _ string, _ bool) ([]*models.Photo, error) {
	return f.photos, nil
}

func (f *fakeBackend) UploadPhoto(_ context.Context, eventID string, file api.PhotoFile) (*models.Photo, error) {
	if err := f.requireHost(); err != nil {
		return nil, err
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	p := &models.Photo{
		ID: "p-new", EventID: eventID, Filename: file.Name, Caption: file.Caption, Size: int64(len(file.Data)),
		MimeType: file.ContentType, URL: "http://blobs/" + file.Name,
		Location: models.StorageRemote, StoragePath: "events/" + eventID + "/" + file.Name,
	}
	f.photos = append(f.photos, p)
	return p, nil
}

func (f *fakeBackend) UploadPhotos(ctx context.Context, eventID string, files []api.PhotoFile) ([]*models.Photo, error) {
	var out []*models.Photo
	for _, file := range files {
		if strings.HasPrefix(file.Name, "bad") {
			continue
		}
		p, err := f.UploadPhoto(ctx, eventID, file)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBackend) DeletePhoto(_ context.Context, _ string, id string) (bool, error) {
	if err := f.requireHost(); err != nil {
		return false, err
	}
	for i, p := range f.photos {
		if p.ID == id {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBackend) UpdateCaption(_ context.Context, _ string, id, caption string) (bool, error) {
	if err := f.requireHost(); err != nil {
		return false, err
	}
	f.lastCaption = caption
	return findPhoto(f.photos, id) != nil, nil
}

func (f *fakeBackend) ReorderPhotos(_ context.Context, _ string, ids []string) ([]*models.Photo, error) {
	if err := f.requireHost(); err != nil {
		return nil, err
	}
	f.lastReorder = ids
	return f.photos, nil
}

func samplePhotos() []*models.Photo {
	pos := 0
	return []*models.Photo{
		{
			ID: "a1", Filename: "first-dance.jpg", Caption: "First dance", Size: 2_400_000, Width: 1920, Height: 1280,
			Location: models.StorageRemote, StoragePath: "events/e/a1.jpg", Position: &pos,
		},
		{
			ID: "b2", Filename: "cake.png", Size: 512_000, Width: 800, Height: 600,
			Location: models.StorageLocal, StoragePath: "local/b2.png",
		},
	}
}

// harness runs commands against a fakeBackend and a real SQLite cache in a
// temp dir.
type harness struct {
	t       *testing.T
	backend *fakeBackend
	cfg     *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.LocalDBPath = filepath.Join(t.TempDir(), "cache.db")
	return &harness{t: t, backend: newFakeBackend(), cfg: cfg}
}

func (h *harness) run(input string, args ...string) (string, error) {
	h.t.Helper()

	a := newApp(h.cfg)
	a.dial = func(string) (client.Client, error) { return h.backend, nil }

	cmd := newRootCommand(a)
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		_ = a.Close()
	}
	return out.String(), err
}

func (h *harness) mustRun(input string, args ...string) string {
	h.t.Helper()
	out, err := h.run(input, args...)
	require.NoError(h.t, err, out)
	return out
}
