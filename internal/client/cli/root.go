package cli

import (
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command of the eventkeeper CLI. Flag
// defaults come from cfg, which LoadConfig has already layered.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	return newRootCommand(newApp(cfg))
}

func newRootCommand(a *App) *cobra.Command {
	var (
		timeoutSec int
		configFile string
	)

	cmd := &cobra.Command{
		Use:           "eventkeeper",
		Short:         "eventkeeper - RSVPs and photo gallery for your event",
		Long:          "Guests confirm attendance with `rsvp`; hosts log in with the event passcode to manage photos and the guest list.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setIO(cmd.InOrStdin(), cmd.OutOrStdout())
			if cmd.Flags().Changed("timeout") {
				a.cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.Close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.cfg.ServerEndpointAddr, "server", "a", a.cfg.ServerEndpointAddr, "address and port to access server")
	pf.StringVarP(&a.cfg.LocalDBPath, "db", "f", a.cfg.LocalDBPath, "local cache database file")
	pf.IntVarP(&timeoutSec, "timeout", "t", int(a.cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	// Read by config.LoadConfig; declared so cobra accepts it.
	pf.StringVarP(&configFile, "config", "c", "", "path to config file (json)")
	pf.StringVarP(&a.eventFlag, "event", "e", "", "event id (defaults to the current event)")

	cmd.AddCommand(NewEventCommand(a))
	cmd.AddCommand(NewLoginCommand(a))
	cmd.AddCommand(NewLogoutCommand(a))
	cmd.AddCommand(NewRSVPCommand(a))
	cmd.AddCommand(NewGuestsCommand(a))
	cmd.AddCommand(NewPhotosCommand(a))

	return cmd
}
