package events

import (
	"context"

	"github.com/dmitrijs2005/eventkeeper/internal/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Event) (*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
}
