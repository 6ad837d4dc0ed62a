package rsvp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventID = "0b6a3c5e-8a38-4d84-9a59-0c3a5a9e2f11"

type memStore struct {
	mu        sync.Mutex
	guests    map[string]*models.Guest
	finds     int
	inserts   int
	updates   int
	findErr   error
	insertErr error
}

func newMemStore() *memStore {
	return &memStore{guests: map[string]*models.Guest{}}
}

func (s *memStore) FindByToken(ctx context.Context, eventID, token string) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.findErr != nil {
		return nil, s.findErr
	}
	g, ok := s.guests[eventID+"/"+token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *g
	return &c, nil
}

func (s *memStore) Insert(ctx context.Context, g *models.Guest) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	c := *g
	c.ID = uuid.NewString()
	s.guests[g.EventID+"/"+g.ConfirmationToken] = &c
	out := c
	return &out, nil
}

func (s *memStore) Update(ctx context.Context, g *models.Guest) (*models.Guest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	key := g.EventID + "/" + g.ConfirmationToken
	cur, ok := s.guests[key]
	if !ok || cur.ID != g.ID {
		return nil, common.ErrorNotFound
	}
	c := *g
	s.guests[key] = &c
	out := c
	return &out, nil
}

func validForm() Form {
	return Form{
		Name:               "Ann Lee",
		Email:              "ann@example.com",
		AttendingCeremony:  true,
		AttendingReception: true,
		PlusOne:            true,
		PlusOneName:        "Bob Lee",
		Message:            "See you there",
	}
}

func walkToDetails(t *testing.T, w *Workflow) {
	t.Helper()
	for w.Step() < StepDetails {
		require.True(t, w.Next(), "step %s: %v", w.Step(), w.Errors())
	}
}

func TestWorkflow_StepsForwardAndBack(t *testing.T) {
	w := New(eventID, "", newMemStore())
	assert.Equal(t, StepIdentity, w.Step())

	assert.False(t, w.Back())
	assert.False(t, w.Next())
	assert.Equal(t, StepIdentity, w.Step())
	assert.Contains(t, w.Errors(), FieldName)

	w.SetForm(Form{Name: "Ann", Email: "ann@example.com", PlusOne: true})
	require.True(t, w.Next())
	assert.Equal(t, StepAttendance, w.Step())
	assert.Empty(t, w.Errors())

	require.True(t, w.Next())
	assert.Equal(t, StepPlusOne, w.Step())
	assert.False(t, w.Next())
	assert.Contains(t, w.Errors(), FieldPlusOneName)

	// going back never validates
	assert.True(t, w.Back())
	assert.Equal(t, StepAttendance, w.Step())
	assert.Empty(t, w.Errors())
	assert.True(t, w.Back())
	assert.Equal(t, StepIdentity, w.Step())
}

func TestWorkflow_SubmitInsertsWithFreshToken(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	w := New(eventID, "", store, WithClock(func() time.Time { return now }))
	w.SetForm(validForm())
	walkToDetails(t, w)

	g, ok := w.Submit(context.Background())
	require.True(t, ok)
	require.NotNil(t, g)

	assert.True(t, w.Submitted())
	assert.NoError(t, w.SubmitError())
	assert.True(t, g.Confirmed)
	require.NotNil(t, g.ConfirmedAt)
	assert.Equal(t, now, *g.ConfirmedAt)
	assert.Equal(t, now, g.LastUpdated)
	assert.Len(t, g.ConfirmationToken, 32)
	assert.Equal(t, g.ConfirmationToken, w.Token())
	assert.Equal(t, "Bob Lee", g.PlusOneName)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 0, store.updates)

	// terminal state has no outward transitions
	assert.False(t, w.Next())
	assert.False(t, w.Back())
	_, ok = w.Submit(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, w.SubmitError(), ErrAlreadySubmitted)
}

func TestWorkflow_ResubmissionWithSameTokenUpdates(t *testing.T) {
	store := newMemStore()
	first := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	w1 := New(eventID, "tok-123", store, WithClock(func() time.Time { return first }))
	w1.SetForm(validForm())
	walkToDetails(t, w1)
	g1, ok := w1.Submit(context.Background())
	require.True(t, ok)
	assert.Equal(t, "tok-123", g1.ConfirmationToken)

	w2 := New(eventID, "tok-123", store, WithClock(func() time.Time { return second }))
	w2.SetForm(validForm())
	walkToDetails(t, w2)
	g2, ok := w2.Submit(context.Background())
	require.True(t, ok)

	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 1, store.updates)
	assert.Len(t, store.guests, 1)
	assert.Equal(t, g1.ID, g2.ID)
	assert.Equal(t, "tok-123", g2.ConfirmationToken)

	require.NotNil(t, g2.ConfirmedAt)
	assert.Equal(t, first, *g2.ConfirmedAt)
	assert.Equal(t, second, g2.LastUpdated)
	assert.Equal(t, first, g2.CreatedAt)
}

func TestWorkflow_EditConfirmedResponse(t *testing.T) {
	store := newMemStore()
	w1 := New(eventID, "tok-9", store)
	_, err := w1.Complete(context.Background(), validForm())
	require.NoError(t, err)

	w2 := New(eventID, "tok-9", store, WithEditing())
	require.True(t, w2.CheckExistingResponse(context.Background()))
	assert.False(t, w2.Submitted())
	assert.Equal(t, "Ann Lee", w2.Form().Name)

	f := w2.Form()
	f.Message = "Running late"
	f.PlusOne = false
	g, err := w2.Complete(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, "Running late", g.Message)
	assert.False(t, g.PlusOne)
	assert.Empty(t, g.PlusOneName)
}

func TestWorkflow_CheckExistingConfirmedIsTerminal(t *testing.T) {
	store := newMemStore()
	confirmedAt := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	store.guests[eventID+"/tok-1"] = &models.Guest{
		ID: "g1", EventID: eventID, Name: "Ann", Email: "ann@example.com",
		Confirmed: true, ConfirmedAt: &confirmedAt, ConfirmationToken: "tok-1",
	}

	w := New(eventID, "tok-1", store)
	require.True(t, w.CheckExistingResponse(context.Background()))

	assert.True(t, w.Submitted())
	assert.Equal(t, "Ann", w.Form().Name)
	assert.Equal(t, "g1", w.Existing().ID)
	assert.False(t, w.Next())
}

func TestWorkflow_CheckExistingUnconfirmedHydrates(t *testing.T) {
	store := newMemStore()
	store.guests[eventID+"/tok-2"] = &models.Guest{
		ID: "g2", EventID: eventID, Name: "Cy", Email: "cy@example.com",
		PlusOne: true, PlusOneName: "Di", ConfirmationToken: "tok-2",
	}

	w := New(eventID, "tok-2", store)
	require.True(t, w.CheckExistingResponse(context.Background()))
	assert.False(t, w.Submitted())
	assert.Equal(t, StepIdentity, w.Step())
	assert.Equal(t, "Di", w.Form().PlusOneName)

	walkToDetails(t, w)
	g, ok := w.Submit(context.Background())
	require.True(t, ok)
	assert.Equal(t, "g2", g.ID)
	assert.NotNil(t, g.ConfirmedAt)
	assert.Equal(t, 1, store.updates)
}

func TestWorkflow_CheckExistingMisses(t *testing.T) {
	store := newMemStore()

	w := New(eventID, "", store)
	assert.False(t, w.CheckExistingResponse(context.Background()))
	assert.Equal(t, 0, store.finds)

	w = New(eventID, "unknown", store)
	assert.False(t, w.CheckExistingResponse(context.Background()))
	assert.Equal(t, StepIdentity, w.Step())
	assert.Equal(t, Form{}, w.Form())

	store.findErr = errors.New("db down")
	w = New(eventID, "tok", store)
	assert.False(t, w.CheckExistingResponse(context.Background()))
	assert.False(t, w.Submitted())
}

func TestWorkflow_SubmitFailureKeepsState(t *testing.T) {
	store := newMemStore()
	store.insertErr = errors.New("connection refused")

	w := New(eventID, "", store)
	w.SetForm(validForm())
	walkToDetails(t, w)

	g, ok := w.Submit(context.Background())
	assert.Nil(t, g)
	assert.False(t, ok)
	assert.ErrorIs(t, w.SubmitError(), ErrSubmitFailed)
	assert.Empty(t, w.Errors())
	assert.False(t, w.Submitted())
	assert.Equal(t, StepDetails, w.Step())
	assert.Equal(t, validForm(), w.Form())

	// retry after the store recovers
	store.insertErr = nil
	_, ok = w.Submit(context.Background())
	assert.True(t, ok)
	assert.NoError(t, w.SubmitError())
}

func TestWorkflow_SubmitRevalidates(t *testing.T) {
	store := newMemStore()
	w := New(eventID, "", store)
	w.SetForm(validForm())
	walkToDetails(t, w)

	f := w.Form()
	f.Email = "broken"
	w.SetForm(f)

	_, ok := w.Submit(context.Background())
	assert.False(t, ok)
	assert.Contains(t, w.Errors(), FieldEmail)
	assert.Equal(t, StepIdentity, w.Step())
	assert.Equal(t, 0, store.inserts)
}

func TestWorkflow_SubmitBeforeFinalStep(t *testing.T) {
	w := New(eventID, "", newMemStore())
	w.SetForm(validForm())

	_, ok := w.Submit(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, w.SubmitError(), ErrNotFinalStep)
}

func TestWorkflow_Complete(t *testing.T) {
	store := newMemStore()
	w := New(eventID, "", store, WithSubEvents(false, true))

	_, err := w.Complete(context.Background(), Form{Name: "Ann", Email: "ann@example.com", PlusOne: true, PlusOneName: " "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Equal(t, StepPlusOne, verr.Step)
	assert.Contains(t, verr.Fields, FieldPlusOneName)

	g, err := w.Complete(context.Background(), validForm())
	require.NoError(t, err)
	assert.False(t, g.AttendingCeremony)
	assert.True(t, g.AttendingReception)

	_, err = w.Complete(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestWorkflow_DecliningEverythingIsValid(t *testing.T) {
	store := newMemStore()
	w := New(eventID, "", store)

	g, err := w.Complete(context.Background(), Form{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.False(t, g.AttendingCeremony)
	assert.False(t, g.AttendingReception)
	assert.True(t, g.Confirmed)
}

func TestValidateGuest(t *testing.T) {
	var verr *ValidationError

	err := ValidateGuest(&models.Guest{Name: "   ", Email: "not-an-email"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepIdentity, verr.Step)
	assert.Contains(t, verr.Fields, FieldName)
	assert.Contains(t, verr.Fields, FieldEmail)

	err = ValidateGuest(&models.Guest{Name: "Ann", Email: "ann@example.com", PlusOne: true})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepPlusOne, verr.Step)
	assert.Contains(t, verr.Fields, FieldPlusOneName)

	assert.NoError(t, ValidateGuest(&models.Guest{Name: "Ann", Email: "ann@example.com"}))
}
