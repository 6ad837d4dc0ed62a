package client

import (
	"context"

	"github.com/dmitrijs2005/eventkeeper/internal/api"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/rsvp"
)

// Client is the backend contract used by the CLI. It is also an
// rsvp.GuestStore, so the confirmation workflow can run against the server.
type Client interface {
	rsvp.GuestStore
	Close() error
	SetAccessToken(token string)

	CreateEvent(ctx context.Context, name string, ceremony, reception bool, passcode []byte) (*models.Event, error)
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	HostLogin(ctx context.Context, eventID string, passcode []byte) (string, error)
	ListGuests(ctx context.Context, eventID string) ([]*models.Guest, error)

	ListPhotos(ctx context.Context, eventID string, refresh bool) ([]*models.Photo, error)
	UploadPhoto(ctx context.Context, eventID string, file api.PhotoFile) (*models.Photo, error)
	UploadPhotos(ctx context.Context, eventID string, files []api.PhotoFile) ([]*models.Photo, error)
	DeletePhoto(ctx context.Context, eventID, photoID string) (bool, error)
	UpdateCaption(ctx context.Context, eventID, photoID, caption string) (bool, error)
	ReorderPhotos(ctx context.Context, eventID string, ids []string) ([]*models.Photo, error)
}
