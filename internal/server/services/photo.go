package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/photos"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/repomanager"
)

// PhotoMetadataService stores photo metadata rows. It satisfies
// photos.MetadataStore; errors are wrapped, never translated, so the photo
// manager can classify them.
type PhotoMetadataService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

var _ photos.MetadataStore = (*PhotoMetadataService)(nil)

func NewPhotoMetadataService(db *sql.DB, m repomanager.RepositoryManager) *PhotoMetadataService {
	return &PhotoMetadataService{db: db, repomanager: m}
}

func (s *PhotoMetadataService) ListByEvent(ctx context.Context, eventID string) ([]*models.Photo, error) {
	return s.repomanager.Photos(s.db).ListByEvent(ctx, eventID)
}

func (s *PhotoMetadataService) Insert(ctx context.Context, p *models.Photo) (*models.Photo, error) {
	return s.repomanager.Photos(s.db).Insert(ctx, p)
}

func (s *PhotoMetadataService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Photos(s.db).Delete(ctx, id)
}

func (s *PhotoMetadataService) UpdateCaption(ctx context.Context, id, caption string) error {
	return s.repomanager.Photos(s.db).UpdateCaption(ctx, id, caption)
}

// SavePositions stores the index of every id as its position, atomically.
func (s *PhotoMetadataService) SavePositions(ctx context.Context, eventID string, ids []string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Photos(tx)
		for i, id := range ids {
			if err := repo.SetPosition(ctx, eventID, id, i); err != nil {
				return fmt.Errorf("error saving position of %s: %w", id, err)
			}
		}
		return nil
	})
}
