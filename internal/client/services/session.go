// Package services holds client-side state kept between CLI runs.
package services

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/eventkeeper/internal/client/repositories/metadata"
)

const (
	keyCurrentEvent = "current_event"
	prefixRSVPToken = "rsvp_token:"
	prefixHostToken = "host_token:"
)

// Session remembers, per event, the guest's confirmation token and the
// host's access token, plus the event the CLI works with by default.
type Session struct {
	repo metadata.Repository
}

func NewSession(repo metadata.Repository) *Session {
	return &Session{repo: repo}
}

func (s *Session) get(ctx context.Context, key string) (string, error) {
	v, _, err := s.repo.Get(ctx, key)
	return v, err
}

// CurrentEvent returns the default event id, or "" when none was chosen.
func (s *Session) CurrentEvent(ctx context.Context) (string, error) {
	return s.get(ctx, keyCurrentEvent)
}

func (s *Session) SetCurrentEvent(ctx context.Context, eventID string) error {
	return s.repo.Set(ctx, keyCurrentEvent, eventID)
}

// ResolveEvent returns explicit when set, else the current event.
func (s *Session) ResolveEvent(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return s.CurrentEvent(ctx)
}

func (s *Session) RSVPToken(ctx context.Context, eventID string) (string, error) {
	return s.get(ctx, prefixRSVPToken+eventID)
}

func (s *Session) SetRSVPToken(ctx context.Context, eventID, token string) error {
	return s.repo.Set(ctx, prefixRSVPToken+eventID, token)
}

func (s *Session) HostToken(ctx context.Context, eventID string) (string, error) {
	return s.get(ctx, prefixHostToken+eventID)
}

func (s *Session) SetHostToken(ctx context.Context, eventID, token string) error {
	return s.repo.Set(ctx, prefixHostToken+eventID, token)
}

func (s *Session) ForgetHostToken(ctx context.Context, eventID string) error {
	return s.repo.Delete(ctx, prefixHostToken+eventID)
}

// HostedEvents lists the events this CLI holds a host token for.
func (s *Session) HostedEvents(ctx context.Context) ([]string, error) {
	m, err := s.repo.ListPrefix(ctx, prefixHostToken)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, strings.TrimPrefix(k, prefixHostToken))
	}
	sort.Strings(out)
	return out, nil
}
