package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/eventkeeper/internal/models"
	"github.com/dmitrijs2005/eventkeeper/internal/rsvp"
	"github.com/spf13/cobra"
)

// RSVPOptions holds flags for `rsvp`.
type RSVPOptions struct {
	Token string
	Edit  bool
}

func NewRSVPCommand(a *App) *cobra.Command {
	opts := &RSVPOptions{}

	cmd := &cobra.Command{
		Use:   "rsvp",
		Short: "Confirm your attendance, or review and edit your response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRSVP(cmd.Context(), a, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Token, "token", "", "confirmation token (defaults to the one saved locally)")
	cmd.Flags().BoolVar(&opts.Edit, "edit", false, "edit an already confirmed response")
	return cmd
}

func runRSVP(ctx context.Context, a *App, opts *RSVPOptions) error {
	eventID, err := a.eventID(ctx)
	if err != nil {
		return err
	}
	s, err := a.sessionStore(ctx)
	if err != nil {
		return err
	}
	c, err := a.client()
	if err != nil {
		return err
	}

	token := opts.Token
	if token == "" {
		if token, err = s.RSVPToken(ctx, eventID); err != nil {
			return err
		}
	}

	rctx, cancel := a.withTimeout(ctx)
	e, err := c.GetEvent(rctx, eventID)
	cancel()
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	wopts := []rsvp.Option{rsvp.WithSubEvents(e.HasCeremony, e.HasReception)}
	if opts.Edit {
		wopts = append(wopts, rsvp.WithEditing())
	}
	w := rsvp.New(eventID, token, c, wopts...)

	rctx, cancel = a.withTimeout(ctx)
	found := w.CheckExistingResponse(rctx)
	cancel()

	if w.Submitted() {
		renderConfirmation(a.out, w.Existing())
		return nil
	}

	a.printf("RSVP for %s\n", e.Name)
	if found {
		a.printf("Editing your response. Press Enter to keep a value.\n")
	}

	g, err := fillForm(ctx, a, w)
	if err != nil {
		return err
	}

	if err := s.SetRSVPToken(ctx, eventID, g.ConfirmationToken); err != nil {
		return fmt.Errorf("response saved but the token could not be stored locally (%s): %w", g.ConfirmationToken, err)
	}
	renderConfirmation(a.out, g)
	return nil
}

// fillForm walks the workflow until it is submitted. Field errors send the
// guest back to the failing step; a failed save can be retried without
// re-entering anything.
func fillForm(ctx context.Context, a *App, w *rsvp.Workflow) (*models.Guest, error) {
	for {
		a.printf("\nStep %d of 4: %s\n", w.Step(), w.Step())

		f, err := promptStep(a, w)
		if err != nil {
			return nil, err
		}
		w.SetForm(f)

		if w.Step() != rsvp.StepDetails {
			if !w.Next() {
				printFieldErrors(a, w.Errors())
			}
			continue
		}

		if !w.Next() {
			printFieldErrors(a, w.Errors())
			continue
		}

		choice, err := GetTextDefault(a.reader, "Submit your response? (s)ubmit, (b)ack, (q)uit", "s", a.out)
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(choice) {
		case "b", "back":
			w.Back()
			continue
		case "q", "quit":
			return nil, errors.New("rsvp cancelled, nothing was saved")
		}

		for {
			sctx, cancel := a.withTimeout(ctx)
			g, ok := w.Submit(sctx)
			cancel()
			if ok {
				return g, nil
			}
			if w.SubmitError() == nil {
				printFieldErrors(a, w.Errors())
				break
			}

			a.printf("%v\n", w.SubmitError())
			retry, err := GetYesNo(a.reader, "Try again?", true, a.out)
			if err != nil {
				return nil, err
			}
			if !retry {
				return nil, w.SubmitError()
			}
		}
	}
}

func promptStep(a *App, w *rsvp.Workflow) (rsvp.Form, error) {
	f := w.Form()
	var err error

	text := func(dst *string, label string) {
		if err == nil {
			*dst, err = GetTextDefault(a.reader, label, *dst, a.out)
		}
	}
	yes := func(dst *bool, label string) {
		if err == nil {
			*dst, err = GetYesNo(a.reader, label, *dst, a.out)
		}
	}

	switch w.Step() {
	case rsvp.StepIdentity:
		text(&f.Name, "Your name")
		text(&f.Email, "Email")
		text(&f.Phone, "Phone (optional)")
	case rsvp.StepAttendance:
		if w.HasCeremony() {
			yes(&f.AttendingCeremony, "Will you attend the ceremony?")
		}
		if w.HasReception() {
			yes(&f.AttendingReception, "Will you attend the reception?")
		}
	case rsvp.StepPlusOne:
		yes(&f.PlusOne, "Are you bringing a plus-one?")
		if f.PlusOne {
			text(&f.PlusOneName, "Plus-one name")
			text(&f.PlusOneDietary, "Plus-one dietary needs (optional)")
		}
	case rsvp.StepDetails:
		text(&f.DietaryRestrictions, "Dietary restrictions (optional)")
		text(&f.SpecialRequests, "Special requests (optional)")
		text(&f.Message, "Message for the hosts (optional)")
	}
	return f, err
}

func printFieldErrors(a *App, errs rsvp.FieldErrors) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.printf("  ! %s\n", errs[k])
	}
}
