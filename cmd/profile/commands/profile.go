package commands

import (
	"github.com/spf13/cobra"

	"github.com/dtroode/lostfound/internal/client"
	"github.com/dtroode/lostfound/internal/preview"
	"github.com/dtroode/lostfound/internal/profile"
	"github.com/dtroode/lostfound/internal/terminal"
)

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Open the interactive profile screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Load(cmd.Context()); err != nil {
				return err
			}

			nav := terminal.NewNavigator(terminal.ProfilePath, log)
			notifications := client.NewNotifications(conn)
			ctrl := profile.NewController(profile.Collaborators{
				Auth:          session,
				Users:         client.NewAccounts(conn, session),
				Items:         client.NewItems(conn),
				Notifications: notifications,
				Confirm:       prompt,
				Navigator:     nav,
				Previews:      preview.NewStore(log),
			}, log)

			return newShell(ctrl, nav, prompt, notifications, cmd.OutOrStdout()).run(cmd.Context())
		},
	}
}
