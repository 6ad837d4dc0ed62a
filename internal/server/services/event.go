// Package services contains server-side business logic over the
// repositories: event hosting, guest responses and photo metadata.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/server/auth"
	"github.com/dmitrijs2005/eventkeeper/internal/server/config"
	"github.com/dmitrijs2005/eventkeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// MinPasscodeLength is the shortest host passcode accepted by Create.
const MinPasscodeLength = 6

// bcryptCost is lowered in tests.
var bcryptCost = bcrypt.DefaultCost

// EventService creates events and authenticates their hosts.
type EventService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *EventService {
	return &EventService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Create stores a new event. The passcode is kept only as a bcrypt hash.
func (s *EventService) Create(ctx context.Context, name string, ceremony, reception bool, passcode []byte) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: event name is required", common.ErrorValidation)
	}
	if len(passcode) < MinPasscodeLength {
		return nil, fmt.Errorf("%w: passcode must be at least %d characters", common.ErrorValidation, MinPasscodeLength)
	}

	hash, err := bcrypt.GenerateFromPassword(passcode, bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing passcode: %w", err)
	}

	e := &models.Event{Name: name, HasCeremony: ceremony, HasReception: reception, HostPasscodeHash: hash}
	created, err := s.repomanager.Events(s.db).Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	return created, nil
}

// Get returns the event or common.ErrorNotFound. Malformed ids never reach
// the database.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	if !models.IsValidID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Events(s.db).Get(ctx, id)
}

// HostLogin checks the passcode of an event and returns a host access token.
// Unknown events and wrong passcodes both yield common.ErrorUnauthorized.
func (s *EventService) HostLogin(ctx context.Context, eventID string, passcode []byte) (string, error) {
	e, err := s.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(e.HostPasscodeHash, passcode); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(e.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
