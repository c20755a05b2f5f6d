// Package cli implements the tracker command line over the local JSON store.
package cli

import (
	"teamtrack/internal/localstore"

	"github.com/spf13/cobra"
)

// App holds the store shared by all CLI commands.
type App struct {
	Store *localstore.Store
}

// NewRootCmd creates the top-level "tracker" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Team, project and task tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newTeamCmd(app),
		newDashboardCmd(app),
		newChatCmd(app),
	)

	return root
}
