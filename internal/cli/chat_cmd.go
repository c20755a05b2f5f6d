package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Read and post to the shared team chat",
	}
	cmd.AddCommand(newChatListCmd(app), newChatPostCmd(app))
	return cmd
}

func newChatListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the team chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := app.Store.Messages(cmd.Context())
			if err != nil {
				return err
			}
			for _, msg := range messages {
				sender := "unknown"
				if m, err := app.Store.FindMember(cmd.Context(), msg.SenderID); err == nil {
					sender = m.Name
				}
				fmt.Printf("[%s] %s: %s\n", msg.Timestamp.Format("2006-01-02 15:04"), sender, msg.Text)
			}
			return nil
		},
	}
}

func newChatPostCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "post <message>",
		Short: "Post a message to the team chat",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := app.Store.PostMessage(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Printf("Posted at %s\n", msg.Timestamp.Format("15:04"))
			return nil
		},
	}
}
