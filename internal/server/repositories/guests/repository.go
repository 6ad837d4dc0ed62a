package guests

import (
	"context"

	"github.com/dmitrijs2005/eventkeeper/internal/models"
)

type Repository interface {
	FindByToken(ctx context.Context, eventID, token string) (*models.Guest, error)
	Insert(ctx context.Context, g *models.Guest) (*models.Guest, error)
	Update(ctx context.Context, g *models.Guest) (*models.Guest, error)
	ListByEvent(ctx context.Context, eventID string) ([]*models.Guest, error)
}
