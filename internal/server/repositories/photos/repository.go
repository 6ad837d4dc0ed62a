package photos

import (
	"context"

	"github.com/dmitrijs2005/eventkeeper/internal/models"
)

type Repository interface {
	ListByEvent(ctx context.Context, eventID string) ([]*models.Photo, error)
	Insert(ctx context.Context, p *models.Photo) (*models.Photo, error)
	Delete(ctx context.Context, id string) error
	UpdateCaption(ctx context.Context, id, caption string) error
	SetPosition(ctx context.Context, eventID, id string, position int) error
}
