package rsvp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/errclass"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/models"
)

var (
	ErrAlreadySubmitted = errors.New("response already submitted")
	ErrNotFinalStep     = errors.New("form is not on the final step")
	ErrSubmitFailed     = errors.New("could not save your response")
)

// GuestStore persists guest responses.
type GuestStore interface {
	// FindByToken returns common.ErrorNotFound when no guest of eventID holds
	// token.
	FindByToken(ctx context.Context, eventID, token string) (*models.Guest, error)
	Insert(ctx context.Context, g *models.Guest) (*models.Guest, error)
	Update(ctx context.Context, g *models.Guest) (*models.Guest, error)
}

// ValidationError is returned by Complete when a step does not validate.
type ValidationError struct {
	Step   Step
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("step %s: invalid %s", e.Step, strings.Join(keys, ", "))
}

func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

// Workflow drives one guest through the form. It is meant for a single
// caller and is not safe for concurrent use.
type Workflow struct {
	eventID string
	token   string
	store   GuestStore
	logger  logging.Logger
	now     func() time.Time

	editing   bool
	ceremony  bool
	reception bool

	step      Step
	submitted bool
	form      Form
	errs      FieldErrors
	submitErr error
	existing  *models.Guest
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithEditing opens an already confirmed response as an editable form
// instead of the submitted view.
func WithEditing() Option {
	return func(w *Workflow) { w.editing = true }
}

// WithSubEvents declares which sub-events the event has. Both are on by
// default.
func WithSubEvents(ceremony, reception bool) Option {
	return func(w *Workflow) {
		w.ceremony = ceremony
		w.reception = reception
	}
}

func WithLogger(l logging.Logger) Option {
	return func(w *Workflow) { w.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// New starts a workflow at step 1. token may be empty.
func New(eventID, token string, store GuestStore, opts ...Option) *Workflow {
	w := &Workflow{
		eventID:   eventID,
		token:     strings.TrimSpace(token),
		store:     store,
		logger:    logging.Nop(),
		now:       time.Now,
		ceremony:  true,
		reception: true,
		step:      StepIdentity,
		errs:      FieldErrors{},
	}
	for _, o := range opts {
		o(w)
	}
	w.logger = w.logger.With("module", "rsvp", "event_id", eventID)
	return w
}

func (w *Workflow) Step() Step { return w.step }

// Submitted reports whether the workflow reached its terminal state.
func (w *Workflow) Submitted() bool { return w.submitted }

func (w *Workflow) Form() Form { return w.form }

// SubmitError is the top-level error of the last Submit, if any.
func (w *Workflow) SubmitError() error { return w.submitErr }

func (w *Workflow) HasCeremony() bool { return w.ceremony }

func (w *Workflow) HasReception() bool { return w.reception }

// Token is the confirmation token the workflow was opened with, or the one
// issued by the last successful Submit.
func (w *Workflow) Token() string { return w.token }

// Existing returns the stored response the form was loaded from or saved to.
func (w *Workflow) Existing() *models.Guest {
	if w.existing == nil {
		return nil
	}
	g := *w.existing
	return &g
}

// Errors returns a copy of the field errors of the last validation.
func (w *Workflow) Errors() FieldErrors {
	out := make(FieldErrors, len(w.errs))
	for k, v := range w.errs {
		out[k] = v
	}
	return out
}

// SetForm replaces the entered values.
func (w *Workflow) SetForm(f Form) {
	w.form = f
}

// CheckExistingResponse looks the token up and, when a response exists,
// loads it into the form. A confirmed response moves the workflow straight to
// the submitted state unless it was opened for editing. It reports whether a
// response was found; lookup failures leave a fresh form at step 1.
func (w *Workflow) CheckExistingResponse(ctx context.Context) bool {
	if w.token == "" {
		return false
	}

	g, err := w.store.FindByToken(ctx, w.eventID, w.token)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			w.logger.Warn(ctx, "guest lookup failed", "kind", errclass.Classify(err).String(), "err", err)
		}
		return false
	}

	w.existing = g
	w.form = formFromGuest(g)
	w.step = StepIdentity
	w.errs = FieldErrors{}
	if g.Confirmed && !w.editing {
		w.submitted = true
	}
	return true
}

// Next validates the current step and advances on success. On the final
// step it only validates.
func (w *Workflow) Next() bool {
	if w.submitted {
		return false
	}
	ok, errs := ValidateStep(w.step, w.form)
	w.errs = errs
	if !ok {
		return false
	}
	if w.step < StepDetails {
		w.step++
	}
	return true
}

// Back moves one step back without validating.
func (w *Workflow) Back() bool {
	if w.submitted || w.step <= StepIdentity {
		return false
	}
	w.step--
	w.errs = FieldErrors{}
	return true
}

// Submit validates the whole form and saves it. An existing response is
// updated in place; otherwise a new one is inserted. On failure the workflow
// stays where it is with the entered data intact and SubmitError set.
func (w *Workflow) Submit(ctx context.Context) (*models.Guest, bool) {
	w.submitErr = nil

	if w.submitted {
		w.submitErr = ErrAlreadySubmitted
		return nil, false
	}
	if w.step != StepDetails {
		w.submitErr = ErrNotFinalStep
		return nil, false
	}

	for s := StepIdentity; s <= StepDetails; s++ {
		if ok, errs := ValidateStep(s, w.form); !ok {
			w.errs = errs
			w.step = s
			return nil, false
		}
	}
	w.errs = FieldErrors{}

	if w.existing == nil && w.token != "" {
		g, err := w.store.FindByToken(ctx, w.eventID, w.token)
		switch {
		case err == nil:
			w.existing = g
		case !errors.Is(err, common.ErrorNotFound):
			w.logger.Warn(ctx, "guest lookup before submit failed", "err", err)
		}
	}

	g, err := w.payload()
	if err != nil {
		w.submitErr = fmt.Errorf("%w: %w", ErrSubmitFailed, err)
		return nil, false
	}

	var saved *models.Guest
	if w.existing != nil {
		saved, err = w.store.Update(ctx, g)
	} else {
		saved, err = w.store.Insert(ctx, g)
	}
	if err != nil {
		w.logger.Error(ctx, "rsvp submit failed", "kind", errclass.Classify(err).String(), "err", err)
		w.submitErr = fmt.Errorf("%w: %w", ErrSubmitFailed, err)
		return nil, false
	}

	w.existing = saved
	w.token = saved.ConfirmationToken
	w.submitted = true
	w.logger.Info(ctx, "rsvp submitted", "guest_id", saved.ID)

	out := *saved
	return &out, true
}

// Complete runs the form from step 1 with f and submits it. Validation
// failures are returned as *ValidationError.
func (w *Workflow) Complete(ctx context.Context, f Form) (*models.Guest, error) {
	if w.submitted {
		return nil, ErrAlreadySubmitted
	}

	w.SetForm(f)
	w.step = StepIdentity
	for {
		if !w.Next() {
			return nil, &ValidationError{Step: w.step, Fields: w.Errors()}
		}
		if w.step == StepDetails {
			break
		}
	}

	g, ok := w.Submit(ctx)
	if !ok {
		if w.submitErr != nil {
			return nil, w.submitErr
		}
		return nil, &ValidationError{Step: w.step, Fields: w.Errors()}
	}
	return g, nil
}

func (w *Workflow) payload() (*models.Guest, error) {
	now := w.now().UTC()
	f := w.form

	token := w.token
	if token == "" && w.existing != nil {
		token = w.existing.ConfirmationToken
	}
	if token == "" {
		t, err := common.MakeRandHexString(16)
		if err != nil {
			return nil, fmt.Errorf("generate token: %w", err)
		}
		token = t
	}

	g := &models.Guest{
		EventID:             w.eventID,
		Name:                strings.TrimSpace(f.Name),
		Email:               strings.TrimSpace(f.Email),
		Phone:               strings.TrimSpace(f.Phone),
		AttendingCeremony:   w.ceremony && f.AttendingCeremony,
		AttendingReception:  w.reception && f.AttendingReception,
		PlusOne:             f.PlusOne,
		DietaryRestrictions: f.DietaryRestrictions,
		SpecialRequests:     f.SpecialRequests,
		Message:             f.Message,
		Confirmed:           true,
		ConfirmedAt:         &now,
		ConfirmationToken:   token,
		LastUpdated:         now,
		CreatedAt:           now,
	}
	if f.PlusOne {
		g.PlusOneName = strings.TrimSpace(f.PlusOneName)
		g.PlusOneDietary = f.PlusOneDietary
	}

	if e := w.existing; e != nil {
		g.ID = e.ID
		g.CreatedAt = e.CreatedAt
		if e.Confirmed && e.ConfirmedAt != nil {
			at := *e.ConfirmedAt
			g.ConfirmedAt = &at
		}
	}
	return g, nil
}

// ValidateGuest checks a response against the identity and plus-one steps.
func ValidateGuest(g *models.Guest) error {
	f := formFromGuest(g)
	for _, step := range []Step{StepIdentity, StepPlusOne} {
		if ok, errs := ValidateStep(step, f); !ok {
			return &ValidationError{Step: step, Fields: errs}
		}
	}
	return nil
}

func formFromGuest(g *models.Guest) Form {
	return Form{
		Name:                g.Name,
		Email:               g.Email,
		Phone:               g.Phone,
		AttendingCeremony:   g.AttendingCeremony,
		AttendingReception:  g.AttendingReception,
		PlusOne:             g.PlusOne,
		PlusOneName:         g.PlusOneName,
		PlusOneDietary:      g.PlusOneDietary,
		DietaryRestrictions: g.DietaryRestrictions,
		SpecialRequests:     g.SpecialRequests,
		Message:             g.Message,
	}
}
