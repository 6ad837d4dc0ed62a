package cli

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/spf13/cobra"
)

// EventCreateOptions holds flags for `event create`.
type EventCreateOptions struct {
	NoCeremony  bool
	NoReception bool
}

func NewEventCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Create, inspect and select events",
	}
	cmd.AddCommand(newEventCreateCommand(a))
	cmd.AddCommand(newEventShowCommand(a))
	cmd.AddCommand(newEventUseCommand(a))
	return cmd
}

func newEventCreateCommand(a *App) *cobra.Command {
	opts := &EventCreateOptions{}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an event and log in as its host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventCreate(cmd, a, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.NoCeremony, "no-ceremony", false, "the event has no ceremony")
	cmd.Flags().BoolVar(&opts.NoReception, "no-reception", false, "the event has no reception")
	return cmd
}

func runEventCreate(cmd *cobra.Command, a *App, name string, opts *EventCreateOptions) error {
	passcode, err := GetPasscode(a.reader, a.in, "Choose a host passcode", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passcode)

	again, err := GetPasscode(a.reader, a.in, "Repeat the passcode", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if !bytes.Equal(passcode, again) {
		return errors.New("passcodes do not match")
	}

	c, err := a.client()
	if err != nil {
		return err
	}
	s, err := a.sessionStore(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(cmd.Context())
	defer cancel()

	e, err := c.CreateEvent(ctx, name, !opts.NoCeremony, !opts.NoReception, passcode)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	token, err := c.HostLogin(ctx, e.ID, passcode)
	if err != nil {
		return fmt.Errorf("log in to new event: %w", err)
	}
	if err := s.SetHostToken(ctx, e.ID, token); err != nil {
		return err
	}
	if err := s.SetCurrentEvent(ctx, e.ID); err != nil {
		return err
	}

	renderEvent(a.out, e)
	a.printf("\nShare the event id with your guests: eventkeeper -e %s rsvp\n", e.ID)
	return nil
}

func newEventShowCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show an event (defaults to the current event)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.eventFlag = args[0]
			}
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			e, err := c.GetEvent(ctx, eventID)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			renderEvent(a.out, e)
			return nil
		},
	}
}

func newEventUseCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make an event the default for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			s, err := a.sessionStore(cmd.Context())
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			e, err := c.GetEvent(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if err := s.SetCurrentEvent(ctx, e.ID); err != nil {
				return err
			}
			a.printf("Now using %q (%s)\n", e.Name, e.ID)
			return nil
		},
	}
}
