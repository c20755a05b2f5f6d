package cli

import (
	"fmt"
	"time"

	"teamtrack/internal/model"
	"teamtrack/internal/visibility"

	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize visible projects and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Store.Projects(cmd.Context())
			if err != nil {
				return err
			}
			tasks, err := app.Store.Tasks(cmd.Context())
			if err != nil {
				return err
			}

			completed := 0
			for _, t := range tasks {
				if t.Status == model.TaskCompleted {
					completed++
				}
			}

			fmt.Printf("Projects: %d\n", len(projects))
			fmt.Printf("Tasks:    %d (%d completed, %d open)\n", len(tasks), completed, len(tasks)-completed)

			upcoming := visibility.UpcomingDeadlines(tasks, time.Now(), 5)
			if len(upcoming) > 0 {
				fmt.Println("\nUpcoming deadlines:")
				for _, t := range upcoming {
					fmt.Printf("  %s  %-8s %s\n", t.DueDate.Format(dateLayout), t.Priority, t.Title)
				}
			}

			if len(projects) > 0 {
				fmt.Println("\nProjects:")
				for _, p := range projects {
					fmt.Printf("  %-30s %-10s %3d%%\n", p.Name, p.Status, p.Progress)
				}
			}
			return nil
		},
	}
}
