package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/rsvp"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/repomanager"
)

// GuestService stores RSVP responses. It satisfies rsvp.GuestStore.
type GuestService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

var _ rsvp.GuestStore = (*GuestService)(nil)

func NewGuestService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *GuestService {
	return &GuestService{db: db, repomanager: m, logger: l.With("module", "guest_service"), now: time.Now}
}

func (s *GuestService) FindByToken(ctx context.Context, eventID, token string) (*models.Guest, error) {
	if !models.IsValidID(eventID) || token == "" {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Guests(s.db).FindByToken(ctx, eventID, token)
}

// Insert stores a new response. The response must pass the identity and
// plus-one checks; it is marked confirmed as of now.
func (s *GuestService) Insert(ctx context.Context, g *models.Guest) (*models.Guest, error) {
	if !models.IsValidID(g.EventID) {
		return nil, common.ErrorInvalidEventID
	}
	if err := rsvp.ValidateGuest(g); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := *g
	c.Confirmed = true
	c.ConfirmedAt = &now
	c.LastUpdated = now
	c.CreatedAt = now

	saved, err := s.repomanager.Guests(s.db).Insert(ctx, &c)
	if err != nil {
		return nil, fmt.Errorf("error inserting guest: %w", err)
	}
	return saved, nil
}

// Update rewrites an existing response. The caller must present the token
// the response was issued with and the matching id; anything else is
// common.ErrorUnauthorized. The first confirmation time is kept.
func (s *GuestService) Update(ctx context.Context, g *models.Guest) (*models.Guest, error) {
	if !models.IsValidID(g.EventID) || g.ConfirmationToken == "" {
		return nil, common.ErrorUnauthorized
	}
	if err := rsvp.ValidateGuest(g); err != nil {
		return nil, err
	}

	var saved *models.Guest
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Guests(tx)

		current, err := repo.FindByToken(ctx, g.EventID, g.ConfirmationToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("error searching guest: %w", err)
		}
		if current.ID != g.ID {
			return common.ErrorUnauthorized
		}

		now := s.now().UTC()
		c := *g
		c.Confirmed = true
		c.ConfirmedAt = &now
		if current.Confirmed && current.ConfirmedAt != nil {
			at := *current.ConfirmedAt
			c.ConfirmedAt = &at
		}
		c.LastUpdated = now
		c.CreatedAt = current.CreatedAt

		saved, err = repo.Update(ctx, &c)
		if err != nil {
			return fmt.Errorf("error updating guest: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// List returns every response of an event.
func (s *GuestService) List(ctx context.Context, eventID string) ([]*models.Guest, error) {
	if !models.IsValidID(eventID) {
		return []*models.Guest{}, nil
	}
	return s.repomanager.Guests(s.db).ListByEvent(ctx, eventID)
}

// Submit runs the confirmation workflow for one guest of event e. A token
// that already has a response updates it; an empty token issues a new one.
func (s *GuestService) Submit(ctx context.Context, e *models.Event, token string, f rsvp.Form) (*models.Guest, error) {
	w := rsvp.New(e.ID, token, s,
		rsvp.WithEditing(),
		rsvp.WithSubEvents(e.HasCeremony, e.HasReception),
		rsvp.WithLogger(s.logger),
	)
	w.CheckExistingResponse(ctx)
	return w.Complete(ctx, f)
}
