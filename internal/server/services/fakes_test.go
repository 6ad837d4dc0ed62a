package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/events"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/guests"
	photosrepo "github.com/dmitrijs2005/eventkeeper/internal/server/repositories/photos"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const testEventID = "5d1c0f7e-3b0a-4a51-9d2e-6f1f2a7c9b10"

func init() {
	bcryptCost = bcrypt.MinCost
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeRepoManager struct {
	events *fakeEventsRepo
	guests *fakeGuestsRepo
	photos *fakePhotosRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		events: &fakeEventsRepo{items: map[string]*models.Event{}},
		guests: &fakeGuestsRepo{},
		photos: &fakePhotosRepo{positions: map[string]int{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Events(dbx.DBTX) events.Repository { return m.events }
func (m *fakeRepoManager) Guests(dbx.DBTX) guests.Repository { return m.guests }
func (m *fakeRepoManager) Photos(dbx.DBTX) photosrepo.Repository { return m.photos }

type fakeEventsRepo struct {
	items     map[string]*models.Event
	createErr error
	getErr    error
}

func (f *fakeEventsRepo) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *e
	out.ID = uuid.NewString()
	out.CreatedAt = time.Now()
	f.items[out.ID] = &out
	return &out, nil
}

func (f *fakeEventsRepo) Get(_ context.Context, id string) (*models.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

type fakeGuestsRepo struct {
	mu        sync.Mutex
	items     []*models.Guest
	insertErr error
	updates   int
}

func (f *fakeGuestsRepo) FindByToken(_ context.Context, eventID, token string) (*models.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.items {
		if g.EventID == eventID && g.ConfirmationToken == token {
			c := *g
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeGuestsRepo) Insert(_ context.Context, g *models.Guest) (*models.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	c := *g
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	f.items = append(f.items, &c)
	out := c
	return &out, nil
}

func (f *fakeGuestsRepo) Update(_ context.Context, g *models.Guest) (*models.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.items {
		if cur.ID == g.ID {
			c := *g
			c.CreatedAt = cur.CreatedAt
			f.items[i] = &c
			f.updates++
			out := c
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeGuestsRepo) ListByEvent(_ context.Context, eventID string) ([]*models.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Guest{}
	for _, g := range f.items {
		if g.EventID == eventID {
			c := *g
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakePhotosRepo struct {
	listOut   []*models.Photo
	listErr   error
	inserted  []*models.Photo
	deleted   []string
	captions  map[string]string
	positions map[string]int
	posErrOn  string
}

func (f *fakePhotosRepo) ListByEvent(context.Context, string) ([]*models.Photo, error) {
	return f.listOut, f.listErr
}

func (f *fakePhotosRepo) Insert(_ context.Context, p *models.Photo) (*models.Photo, error) {
	c := p.Clone()
	c.ID = uuid.NewString()
	f.inserted = append(f.inserted, c)
	return c, nil
}

func (f *fakePhotosRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePhotosRepo) UpdateCaption(_ context.Context, id, caption string) error {
	if f.captions == nil {
		f.captions = map[string]string{}
	}
	f.captions[id] = caption
	return nil
}

func (f *fakePhotosRepo) SetPosition(_ context.Context, _ string, id string, position int) error {
	if id == f.posErrOn {
		return common.ErrorNotFound
	}
	f.positions[id] = position
	return nil
}
