// Package photos provides the PostgreSQL repository for event_photos.
package photos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
)

// PostgresRepository implements photo metadata storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByEvent returns the photos of an event, explicitly positioned ones
// first, then newest first.
func (r *PostgresRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Photo, error) {
	query := `
		SELECT id, event_id, url, filename, caption, size, width, height, mime_type,
			storage_path, position, created_at, updated_at
		FROM event_photos
		WHERE event_id = $1
		ORDER BY position ASC NULLS LAST, created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to select photos: %w", err)
	}
	defer rows.Close()

	result := []*models.Photo{}
	for rows.Next() {
		var (
			p        models.Photo
			position sql.NullInt32
		)
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.URL, &p.Filename, &p.Caption, &p.Size, &p.Width, &p.Height, &p.MimeType,
			&p.StoragePath, &position, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if position.Valid {
			pos := int(position.Int32)
			p.Position = &pos
		}
		p.Location = models.StorageRemote
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores p and fills in the generated id and timestamps. Once the
// event has been reordered the new row is positioned ahead of the others.
func (r *PostgresRepository) Insert(ctx context.Context, p *models.Photo) (*models.Photo, error) {
	query := `
		INSERT INTO event_photos (event_id, url, filename, caption, size, width, height, mime_type, storage_path, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			(SELECT min(position) - 1 FROM event_photos WHERE event_id = $1))
		RETURNING id, position, created_at, updated_at
	`
	var position sql.NullInt32
	err := r.db.QueryRowContext(ctx, query,
		p.EventID, p.URL, p.Filename, p.Caption, p.Size, p.Width, p.Height, p.MimeType, p.StoragePath,
	).Scan(&p.ID, &position, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Position = nil
	if position.Valid {
		pos := int(position.Int32)
		p.Position = &pos
	}
	p.Location = models.StorageRemote
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) UpdateCaption(ctx context.Context, id, caption string) error {
	query := `UPDATE event_photos SET caption = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, caption)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) SetPosition(ctx context.Context, eventID, id string, position int) error {
	query := `UPDATE event_photos SET position = $3 WHERE event_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, eventID, id, position)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
