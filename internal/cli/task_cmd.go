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

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "List and manage tasks",
	}
	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskDoneCmd(app),
		newTaskAssignCmd(app),
		newTaskDeleteCmd(app),
	)
	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List visible tasks by due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Store.Tasks(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tASSIGNEE")
			for _, t := range tasks {
				assignee := "-"
				if t.AssigneeID != nil {
					if m, err := app.Store.FindMember(cmd.Context(), *t.AssigneeID); err == nil {
						assignee = m.Name
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(t.ID), t.Title, t.Status, t.Priority, t.DueDate.Format(dateLayout), assignee)
			}
			return w.Flush()
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		due      string
		priority string
		project  string
		assignee string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := time.Parse(dateLayout, due)
			if err != nil {
				return fmt.Errorf("invalid --due: %w", err)
			}
			if priority != "" && !model.ValidPriority(priority) {
				return fmt.Errorf("unknown priority %q", priority)
			}

			task := &model.Task{
				Title:    args[0],
				DueDate:  dueDate,
				Priority: priority,
			}
			if project != "" {
				id, err := resolveProjectID(app, cmd, project)
				if err != nil {
					return err
				}
				task.ProjectID = &id
			}
			if assignee != "" {
				id, err := uuid.Parse(assignee)
				if err != nil {
					return fmt.Errorf("invalid --assignee: %w", err)
				}
				task.AssigneeID = &id
			}

			overridden, err := app.Store.CreateTask(cmd.Context(), task)
			if err != nil {
				return err
			}
			fmt.Printf("Added task %s (%s)\n", task.Title, shortID(task.ID))
			if overridden {
				fmt.Println("Note: only a Leader can assign tasks to others; assigned to you instead")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "Low, Medium or High")
	cmd.Flags().StringVar(&project, "project", "", "project id")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee member id (Leader only)")
	cmd.MarkFlagRequired("due")
	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app, cmd, args[0])
			if err != nil {
				return err
			}
			task.Status = model.TaskCompleted
			if _, err := app.Store.UpdateTask(cmd.Context(), task); err != nil {
				return err
			}
			fmt.Printf("Completed %s\n", task.Title)
			return nil
		},
	}
}

func newTaskAssignCmd(app *App) *cobra.Command {
	var (
		to   string
		none bool
	)
	cmd := &cobra.Command{
		Use:   "assign <task-id>",
		Short: "Assign a task to a member, or clear the assignee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (to != "") == none {
				return fmt.Errorf("exactly one of --to and --none is required")
			}

			task, err := resolveTask(app, cmd, args[0])
			if err != nil {
				return err
			}

			var assignee *uuid.UUID
			if to != "" {
				id, err := resolveMemberID(app, cmd, to)
				if err != nil {
					return err
				}
				assignee = &id
			}

			overridden, err := app.Store.AssignTask(cmd.Context(), task.ID, assignee)
			if err != nil {
				return err
			}
			switch {
			case overridden:
				fmt.Println("Only a Leader can assign tasks to others; assigned to you instead")
			case assignee == nil:
				fmt.Printf("Unassigned %s\n", task.Title)
			default:
				fmt.Printf("Assigned %s\n", task.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "assignee member id or email")
	cmd.Flags().BoolVar(&none, "none", false, "clear the assignee")
	return cmd
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := resolveTask(app, cmd, args[0])
			if err != nil {
				return err
			}
			if err := app.Store.DeleteTask(cmd.Context(), task.ID); err != nil {
				return err
			}
			fmt.Println("Task deleted")
			return nil
		},
	}
}

func resolveTask(app *App, cmd *cobra.Command, arg string) (*model.Task, error) {
	tasks, err := app.Store.Tasks(cmd.Context())
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID.String() == arg || shortID(tasks[i].ID) == arg {
			return &tasks[i], nil
		}
	}
	return nil, fmt.Errorf("no task matching %q", arg)
}
