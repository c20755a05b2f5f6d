package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"teamtrack/internal/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "List and manage projects",
	}
	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectCreateCmd(app),
		newProjectEditCmd(app),
		newProjectDeleteCmd(app),
	)
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List visible projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Store.Projects(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROGRESS\tDUE")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\t%s\n",
					shortID(p.ID), p.Name, p.Status, p.Progress, p.EndDate.Format(dateLayout))
			}
			return w.Flush()
		},
	}
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var (
		start  string
		end    string
		status string
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project (Leader only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			endDate, err := time.Parse(dateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			if status != "" && !model.ValidProjectStatus(status) {
				return fmt.Errorf("unknown status %q", status)
			}

			project := &model.Project{
				Name:      args[0],
				StartDate: startDate,
				EndDate:   endDate,
				Status:    status,
			}
			if err := app.Store.CreateProject(cmd.Context(), project); err != nil {
				return err
			}
			fmt.Printf("Created project %s (%s)\n", project.Name, shortID(project.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", time.Now().Format(dateLayout), "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Planned, Ongoing, Completed or Overdue")
	cmd.MarkFlagRequired("end")
	return cmd
}

func newProjectEditCmd(app *App) *cobra.Command {
	var (
		name   string
		start  string
		end    string
		status string
	)
	cmd := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Edit a project (Leader only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app, cmd, args[0])
			if err != nil {
				return err
			}
			project, err := app.Store.FindProject(cmd.Context(), id)
			if err != nil {
				return err
			}

			if name != "" {
				project.Name = name
			}
			if start != "" {
				startDate, err := time.Parse(dateLayout, start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				project.StartDate = startDate
			}
			if end != "" {
				endDate, err := time.Parse(dateLayout, end)
				if err != nil {
					return fmt.Errorf("invalid --end: %w", err)
				}
				project.EndDate = endDate
			}
			if status != "" {
				if !model.ValidProjectStatus(status) {
					return fmt.Errorf("unknown status %q", status)
				}
				project.Status = status
			}

			if err := app.Store.UpdateProject(cmd.Context(), project); err != nil {
				return err
			}
			fmt.Printf("Updated project %s\n", project.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Planned, Ongoing, Completed or Overdue")
	return cmd
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and all its tasks (Leader only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(app, cmd, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteProject(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Project deleted")
			return nil
		},
	}
}

// shortID renders the first uuid block, enough to identify records in a
// small demo store.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// resolveProjectID accepts a full uuid or a shortID prefix.
func resolveProjectID(app *App, cmd *cobra.Command, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}
	projects, err := app.Store.Projects(cmd.Context())
	if err != nil {
		return uuid.Nil, err
	}
	for _, p := range projects {
		if shortID(p.ID) == arg {
			return p.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("no project matching %q", arg)
}
