package photos

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/blobstore"
	"github.com/dmitrijs2005/eventkeeper/internal/errclass"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
)

// DefaultTimeout bounds every call to the remote stores.
const DefaultTimeout = 30 * time.Second

// File is an upload request.
type File struct {
	Name string
	Data []byte
	// ContentType is sniffed from Data when empty.
	ContentType string
	Caption     string
}

// Manager owns the photo collection of one event. It is safe for concurrent
// use; store calls run outside the lock and their results are applied when
// they return.
type Manager struct {
	eventID string
	remote  *remoteBackend
	local   *localBackend
	logger  logging.Logger
	timeout time.Duration
	now     func() time.Time

	mu          sync.Mutex
	photos      []*models.Photo
	initialized bool
	progress    Progress
	subs        map[int]chan Progress
	nextSub     int
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a manager for eventID. When store or meta is nil every
// photo goes to the local store.
func NewManager(eventID string, store blobstore.Store, meta MetadataStore, local *blobstore.MemoryStore, opts ...Option) *Manager {
	m := &Manager{
		eventID: eventID,
		logger:  logging.Nop(),
		timeout: DefaultTimeout,
		now:     time.Now,
		photos:  []*models.Photo{},
		subs:    make(map[int]chan Progress),
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.With("module", "photos", "event_id", eventID)

	m.local = &localBackend{store: local}
	if store != nil && meta != nil {
		m.remote = &remoteBackend{store: store, meta: meta, logger: m.logger}
	}
	return m
}

// EventID returns the event the manager is bound to.
func (m *Manager) EventID() string {
	return m.eventID
}

// Photos returns a copy of the collection, in display order.
func (m *Manager) Photos() []*models.Photo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clonePhotos(m.photos)
}

// Initialized reports whether List has completed at least once.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

func (m *Manager) remoteEnabled() bool {
	return m.remote != nil && models.IsValidID(m.eventID)
}

// List loads the event's photos from the metadata store and returns them
// together with any photos held locally. It never returns nil: a malformed
// event id, a missing table or a rejected id all yield an empty list.
func (m *Manager) List(ctx context.Context) []*models.Photo {
	if !models.IsValidID(m.eventID) {
		m.mu.Lock()
		m.initialized = true
		m.mu.Unlock()
		return []*models.Photo{}
	}
	if m.remote == nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.initialized = true
		return clonePhotos(m.photos)
	}

	m.mu.Lock()
	known := make(map[string]bool, len(m.photos))
	for _, p := range m.photos {
		known[p.ID] = true
	}
	m.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, m.timeout)
	remote, err := m.remote.meta.ListByEvent(cctx, m.eventID)
	cancel()

	if err != nil {
		m.remote.noteTable(err)
		if errclass.Recognized(err) {
			m.logger.Warn(ctx, "photo list unavailable", "kind", errclass.Classify(err).String())
		} else {
			m.logger.Error(ctx, "photo list failed", "err", err)
		}
		remote = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Photos uploaded while the query ran are kept; photos deleted while it
	// ran are not brought back.
	current := make(map[string]bool, len(m.photos))
	merged := make([]*models.Photo, 0, len(m.photos)+len(remote))
	for _, p := range m.photos {
		current[p.ID] = true
		if p.IsLocal() || !known[p.ID] {
			merged = append(merged, p)
		}
	}
	seen := make(map[string]bool, len(merged))
	for _, p := range merged {
		seen[p.ID] = true
	}
	for _, p := range remote {
		if seen[p.ID] || (known[p.ID] && !current[p.ID]) {
			continue
		}
		p.Location = models.StorageRemote
		merged = append(merged, p)
	}
	m.photos = merged
	m.initialized = true
	return clonePhotos(merged)
}

// Upload stores one file and prepends the resulting photo. It returns nil
// only when the file cannot be decoded or neither store accepted it; the
// reason is then in Progress().Err.
func (m *Manager) Upload(ctx context.Context, f File) *models.Photo {
	m.setProgress(Progress{Loading: true})

	mimeType := detectMIME(f.ContentType, f.Data)
	width, height, err := dimensions(f.Data)
	if err != nil {
		m.logger.Error(ctx, "upload rejected", "filename", f.Name, "err", err)
		m.fail(err)
		return nil
	}
	m.setProgress(Progress{Loading: true, Percent: 25})

	name := f.Name
	ext := extension(name, mimeType)
	if name == "" {
		name = "photo." + ext
	}
	u := &upload{
		eventID:   m.eventID,
		filename:  filepath.Base(name),
		ext:       ext,
		mimeType:  mimeType,
		data:      f.Data,
		width:     width,
		height:    height,
		caption:   f.Caption,
		createdAt: m.now().UTC(),
	}

	var p *models.Photo
	if m.remoteEnabled() {
		cctx, cancel := context.WithTimeout(ctx, m.timeout)
		p, err = m.remote.put(cctx, u)
		cancel()
		if err != nil {
			m.logger.Warn(ctx, "remote upload failed, storing locally",
				"kind", errclass.Classify(err).String(), "err", err)
			p = nil
		}
	}
	m.setProgress(Progress{Loading: true, Percent: 60})

	if p == nil {
		p, err = m.local.put(ctx, u)
		if err != nil {
			m.logger.Error(ctx, "local upload failed", "err", err)
			m.fail(err)
			return nil
		}
	}

	if err := ctx.Err(); err != nil {
		m.logger.Warn(ctx, "upload result discarded", "photo_id", p.ID, "err", err)
		m.discard(ctx, p)
		m.fail(err)
		return nil
	}

	m.mu.Lock()
	m.photos = append([]*models.Photo{p}, m.photos...)
	m.mu.Unlock()

	m.setProgress(Progress{Percent: 100})
	m.logger.Info(ctx, "photo uploaded", "photo_id", p.ID, "location", string(p.Location))
	return p.Clone()
}

// discard removes a stored photo whose caller has gone away, so the next
// List does not bring it back.
func (m *Manager) discard(ctx context.Context, p *models.Photo) {
	b, err := m.backendFor(p)
	if err == nil {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
		err = b.delete(cctx, p)
		cancel()
	}
	if err != nil {
		m.logger.Error(ctx, "discarded photo not removed", "photo_id", p.ID, "err", err)
	}
}

func (m *Manager) fail(err error) {
	m.setProgress(Progress{Err: err})
}

// UploadMultiple uploads every image file in order, skipping other content
// types and files that fail. The result holds one photo per stored file.
func (m *Manager) UploadMultiple(ctx context.Context, files []File) []*models.Photo {
	out := make([]*models.Photo, 0, len(files))
	for _, f := range files {
		if mt := detectMIME(f.ContentType, f.Data); !isImage(mt) {
			m.logger.Warn(ctx, "skipping non-image file", "filename", f.Name, "mime_type", mt)
			continue
		}
		if p := m.Upload(ctx, f); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (m *Manager) find(id string) (*models.Photo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.photos {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return nil, false
}

func (m *Manager) backendFor(p *models.Photo) (backend, error) {
	if p.IsLocal() {
		return m.local, nil
	}
	if m.remote == nil {
		return nil, errors.New("remote storage is not configured")
	}
	return m.remote, nil
}

// Delete removes a photo and, for remote photos, its stored object and
// metadata row. It reports whether the photo is gone.
func (m *Manager) Delete(ctx context.Context, id string) bool {
	p, ok := m.find(id)
	if !ok {
		m.logger.Warn(ctx, "delete of unknown photo", "photo_id", id)
		return false
	}

	b, err := m.backendFor(p)
	if err == nil {
		cctx, cancel := context.WithTimeout(ctx, m.timeout)
		err = b.delete(cctx, p)
		cancel()
	}
	if err != nil {
		m.logger.Error(ctx, "photo delete failed", "photo_id", id, "err", err)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := make([]*models.Photo, 0, len(m.photos))
	for _, q := range m.photos {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	m.photos = kept
	return true
}

// UpdateCaption sets the caption of a photo. Remote photos are updated in the
// metadata store first; a missing table still counts as success.
func (m *Manager) UpdateCaption(ctx context.Context, id, caption string) bool {
	p, ok := m.find(id)
	if !ok {
		m.logger.Warn(ctx, "caption update of unknown photo", "photo_id", id)
		return false
	}

	b, err := m.backendFor(p)
	if err == nil {
		cctx, cancel := context.WithTimeout(ctx, m.timeout)
		err = b.updateCaption(cctx, p, caption)
		cancel()
	}
	if err != nil {
		m.logger.Error(ctx, "caption update failed", "photo_id", id, "err", err)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.photos {
		if q.ID == id {
			q.Caption = caption
			q.UpdatedAt = m.now().UTC()
		}
	}
	return true
}

// Reorder puts the photos named by ids first, in that order. Unknown and
// repeated ids are ignored; photos not named keep their relative order after
// the named ones. The order of remote photos is then saved on a best-effort
// basis.
func (m *Manager) Reorder(ctx context.Context, ids []string) []*models.Photo {
	m.mu.Lock()
	byID := make(map[string]*models.Photo, len(m.photos))
	for _, p := range m.photos {
		byID[p.ID] = p
	}

	ordered := make([]*models.Photo, 0, len(m.photos))
	placed := make(map[string]bool, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && !placed[id] {
			ordered = append(ordered, p)
			placed[id] = true
		}
	}
	for _, p := range m.photos {
		if !placed[p.ID] {
			ordered = append(ordered, p)
		}
	}

	var remoteIDs []string
	for i, p := range ordered {
		pos := i
		p.Position = &pos
		if !p.IsLocal() {
			remoteIDs = append(remoteIDs, p.ID)
		}
	}
	m.photos = ordered
	out := clonePhotos(ordered)
	m.mu.Unlock()

	if len(remoteIDs) > 0 && m.remoteEnabled() {
		if !m.remote.tableMissing.Load() {
			cctx, cancel := context.WithTimeout(ctx, m.timeout)
			err := m.remote.meta.SavePositions(cctx, m.eventID, remoteIDs)
			cancel()
			if err != nil {
				m.remote.noteTable(err)
				m.logger.Warn(ctx, "photo order not saved", "kind", errclass.Classify(err).String(), "err", err)
			}
		}
	}

	return out
}

func clonePhotos(in []*models.Photo) []*models.Photo {
	out := make([]*models.Photo, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
