package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/blobstore"
	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/errclass"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/google/uuid"
)

// MetadataStore persists photo metadata rows (the event_photos table).
type MetadataStore interface {
	// ListByEvent returns photos ordered by position, then newest first.
	ListByEvent(ctx context.Context, eventID string) ([]*models.Photo, error)
	// Insert stores p and returns it with the id and timestamps assigned by
	// the store.
	Insert(ctx context.Context, p *models.Photo) (*models.Photo, error)
	Delete(ctx context.Context, id string) error
	UpdateCaption(ctx context.Context, id, caption string) error
	// SavePositions stores the gallery order given by ids.
	SavePositions(ctx context.Context, eventID string, ids []string) error
}

// upload is a decoded file ready to be stored.
type upload struct {
	eventID   string
	filename  string
	ext       string
	mimeType  string
	data      []byte
	width     int
	height    int
	caption   string
	createdAt time.Time
}

func (u *upload) photo() *models.Photo {
	return &models.Photo{
		EventID:   u.eventID,
		Filename:  u.filename,
		Caption:   u.caption,
		Size:      int64(len(u.data)),
		Width:     u.width,
		Height:    u.height,
		MimeType:  u.mimeType,
		CreatedAt: u.createdAt,
		UpdatedAt: u.createdAt,
	}
}

// backend is one place photos can live. Both implementations return the same
// shape so the Manager never branches on where a photo is stored.
type backend interface {
	location() models.StorageLocation
	put(ctx context.Context, u *upload) (*models.Photo, error)
	delete(ctx context.Context, p *models.Photo) error
	updateCaption(ctx context.Context, p *models.Photo, caption string) error
}

// remoteBackend writes bytes to an object store and a row to the metadata
// table.
type remoteBackend struct {
	store  blobstore.Store
	meta   MetadataStore
	logger logging.Logger

	// tableMissing is set once the metadata table is known to be absent;
	// metadata deletes are skipped from then on.
	tableMissing atomic.Bool
}

func (b *remoteBackend) location() models.StorageLocation { return models.StorageRemote }

// objectKey returns events/<event>/<unix ms>-<random>.<ext>.
func objectKey(eventID, ext string, now time.Time) (string, error) {
	suffix, err := common.MakeRandHexString(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("events/%s/%d-%s.%s", eventID, now.UnixMilli(), suffix, ext), nil
}

func (b *remoteBackend) put(ctx context.Context, u *upload) (*models.Photo, error) {
	key, err := objectKey(u.eventID, u.ext, u.createdAt)
	if err != nil {
		return nil, err
	}

	if err := b.store.Put(ctx, key, u.data, u.mimeType); err != nil {
		return nil, err
	}

	p := u.photo()
	p.URL = b.store.URL(key)
	p.StoragePath = key
	p.Location = models.StorageRemote

	saved, err := b.meta.Insert(ctx, p)
	if err != nil {
		b.noteTable(err)
		if derr := b.store.Delete(ctx, key); derr != nil {
			b.logger.Warn(ctx, "orphan object left in store", "key", key, "err", derr)
		}
		return nil, fmt.Errorf("insert photo metadata: %w", err)
	}
	saved.Location = models.StorageRemote
	return saved, nil
}

func (b *remoteBackend) delete(ctx context.Context, p *models.Photo) error {
	if err := b.store.Delete(ctx, p.StoragePath); err != nil {
		kind := errclass.Classify(err)
		if kind != errclass.ObjectNotFound && !errclass.Recognized(err) {
			return err
		}
		b.logger.Warn(ctx, "object delete skipped", "key", p.StoragePath, "kind", kind.String())
	}

	if b.tableMissing.Load() {
		return nil
	}
	if err := b.meta.Delete(ctx, p.ID); err != nil {
		if b.noteTable(err) || errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("delete photo metadata: %w", err)
	}
	return nil
}

func (b *remoteBackend) updateCaption(ctx context.Context, p *models.Photo, caption string) error {
	if b.tableMissing.Load() {
		return nil
	}
	if err := b.meta.UpdateCaption(ctx, p.ID, caption); err != nil {
		if b.noteTable(err) {
			return nil
		}
		return fmt.Errorf("update caption: %w", err)
	}
	return nil
}

// noteTable records a missing metadata table and reports whether err was one.
func (b *remoteBackend) noteTable(err error) bool {
	if errclass.Classify(err) != errclass.RelationNotFound {
		return false
	}
	b.tableMissing.Store(true)
	return true
}

// localBackend keeps bytes in process memory. Nothing it stores is durable.
type localBackend struct {
	store *blobstore.MemoryStore
}

func (b *localBackend) location() models.StorageLocation { return models.StorageLocal }

func (b *localBackend) put(ctx context.Context, u *upload) (*models.Photo, error) {
	id := uuid.NewString()
	key := common.LocalStoragePrefix + id + "." + u.ext

	if err := b.store.Put(ctx, key, u.data, u.mimeType); err != nil {
		return nil, err
	}

	p := u.photo()
	p.ID = id
	p.URL = b.store.URL(key)
	p.StoragePath = key
	p.Location = models.StorageLocal
	return p, nil
}

func (b *localBackend) delete(ctx context.Context, p *models.Photo) error {
	if !strings.HasPrefix(p.StoragePath, common.LocalStoragePrefix) {
		return nil
	}
	return b.store.Delete(ctx, p.StoragePath)
}

func (b *localBackend) updateCaption(context.Context, *models.Photo, string) error {
	return nil
}

var (
	_ backend = (*remoteBackend)(nil)
	_ backend = (*localBackend)(nil)
)
