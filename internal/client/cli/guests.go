package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewGuestsCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "guests",
		Short: "List guest responses (host only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.eventID(cmd.Context())
			if err != nil {
				return err
			}
			c, err := a.hostClient(cmd.Context(), eventID)
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			guests, err := c.ListGuests(ctx, eventID)
			if err != nil {
				return fmt.Errorf("list guests: %w", hostError(err))
			}
			renderGuests(a.out, guests)
			return nil
		},
	}
}
