// Package guests provides the PostgreSQL repository for RSVP responses.
package guests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const guestColumns = `id, event_id, name, email, phone, attending_ceremony, attending_reception,
	plus_one, plus_one_name, plus_one_dietary, dietary_restrictions, special_requests, message,
	confirmed, confirmed_at, confirmation_token, last_updated, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGuest(s scanner) (*models.Guest, error) {
	var (
		g           models.Guest
		confirmedAt sql.NullTime
	)
	err := s.Scan(
		&g.ID, &g.EventID, &g.Name, &g.Email, &g.Phone, &g.AttendingCeremony, &g.AttendingReception,
		&g.PlusOne, &g.PlusOneName, &g.PlusOneDietary, &g.DietaryRestrictions, &g.SpecialRequests, &g.Message,
		&g.Confirmed, &confirmedAt, &g.ConfirmationToken, &g.LastUpdated, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		g.ConfirmedAt = &t
	}
	return &g, nil
}

// FindByToken returns the response of eventID holding token, or
// common.ErrorNotFound.
func (r *PostgresRepository) FindByToken(ctx context.Context, eventID, token string) (*models.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE event_id = $1 AND confirmation_token = $2`

	g, err := scanGuest(r.db.QueryRowContext(ctx, query, eventID, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, g *models.Guest) (*models.Guest, error) {
	query := `
		INSERT INTO guests (event_id, name, email, phone, attending_ceremony, attending_reception,
			plus_one, plus_one_name, plus_one_dietary, dietary_restrictions, special_requests, message,
			confirmed, confirmed_at, confirmation_token, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		g.EventID, g.Name, g.Email, g.Phone, g.AttendingCeremony, g.AttendingReception,
		g.PlusOne, g.PlusOneName, g.PlusOneDietary, g.DietaryRestrictions, g.SpecialRequests, g.Message,
		g.Confirmed, g.ConfirmedAt, g.ConfirmationToken, g.LastUpdated,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

// Update rewrites the response identified by (id, event, token). The token
// itself never changes. common.ErrorNotFound is returned when no row matches.
func (r *PostgresRepository) Update(ctx context.Context, g *models.Guest) (*models.Guest, error) {
	query := `
		UPDATE guests SET
			name = $4, email = $5, phone = $6, attending_ceremony = $7, attending_reception = $8,
			plus_one = $9, plus_one_name = $10, plus_one_dietary = $11, dietary_restrictions = $12,
			special_requests = $13, message = $14, confirmed = $15, confirmed_at = $16, last_updated = $17
		WHERE id = $1 AND event_id = $2 AND confirmation_token = $3
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		g.ID, g.EventID, g.ConfirmationToken,
		g.Name, g.Email, g.Phone, g.AttendingCeremony, g.AttendingReception,
		g.PlusOne, g.PlusOneName, g.PlusOneDietary, g.DietaryRestrictions,
		g.SpecialRequests, g.Message, g.Confirmed, g.ConfirmedAt, g.LastUpdated,
	).Scan(&g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return g, nil
}

// ListByEvent returns every response of an event, most recently updated first.
func (r *PostgresRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE event_id = $1 ORDER BY last_updated DESC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to select guests: %w", err)
	}
	defer rows.Close()

	result := []*models.Guest{}
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
