package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"teamtrack/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "List and manage the team roster",
	}
	cmd.AddCommand(
		newTeamListCmd(app),
		newTeamAddCmd(app),
		newTeamRemoveCmd(app),
	)
	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Store.Members(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROLE\tTITLE\tEMAIL")
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(m.ID), m.Name, m.Role, m.Title, m.Email)
			}
			return w.Flush()
		},
	}
}

func newTeamAddCmd(app *App) *cobra.Command {
	var (
		email string
		role  string
		title string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a team member (Leader only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "" && !model.ValidRole(role) {
				return fmt.Errorf("unknown role %q", role)
			}

			member := &model.Member{
				Name:  args[0],
				Email: email,
				Role:  role,
				Title: title,
			}
			if err := app.Store.AddMember(cmd.Context(), member); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", member.Name, member.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "member email")
	cmd.Flags().StringVar(&role, "role", model.RoleMember, "Leader or Member")
	cmd.Flags().StringVar(&title, "title", "", "job title")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newTeamRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <member-id>",
		Short: "Remove a team member (Leader only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveMemberID(app, cmd, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.RemoveMember(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Member removed; their tasks are now unassigned")
			return nil
		},
	}
}

func resolveMemberID(app *App, cmd *cobra.Command, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}
	members, err := app.Store.Members(cmd.Context())
	if err != nil {
		return uuid.Nil, err
	}
	for _, m := range members {
		if shortID(m.ID) == arg || m.Email == arg {
			return m.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("no member matching %q", arg)
}
