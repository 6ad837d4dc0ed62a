package cli

import (
	"fmt"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/spf13/cobra"
)

func NewLoginCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in as host of the event with its passcode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}

			passcode, err := GetPasscode(a.reader, a.in, "Host passcode", a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(passcode)

			c, err := a.client()
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			token, err := c.HostLogin(ctx, eventID, passcode)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			s, err := a.sessionStore(ctx)
			if err != nil {
				return err
			}
			if err := s.SetHostToken(ctx, eventID, token); err != nil {
				return err
			}
			if err := s.SetCurrentEvent(ctx, eventID); err != nil {
				return err
			}
			a.printf("Logged in as host of %s\n", eventID)
			return nil
		},
	}
}

func NewLogoutCommand(a *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the host session of the event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.sessionStore(ctx)
			if err != nil {
				return err
			}

			var events []string
			if all {
				if events, err = s.HostedEvents(ctx); err != nil {
					return err
				}
			} else {
				eventID, err := a.eventID(ctx)
				if err != nil {
					return err
				}
				events = []string{eventID}
			}

			for _, id := range events {
				if err := s.ForgetHostToken(ctx, id); err != nil {
					return err
				}
				a.printf("Logged out of %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "log out of every event")
	return cmd
}
