package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskdeck/internal/bootstrap"
	tasksdto "taskdeck/internal/modules/tasks/dto"
	"taskdeck/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "taskdeck",
		Short:         "Task and chat client for the taskdeck backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.taskdeck/config.yaml)")

	root.AddCommand(newTUICmd(&configPath))
	root.AddCommand(newLoginCmd(&configPath))
	root.AddCommand(newRegisterCmd(&configPath))
	root.AddCommand(newLogoutCmd(&configPath))
	root.AddCommand(newWhoamiCmd(&configPath))
	root.AddCommand(newTaskCmd(&configPath))
	root.AddCommand(newChatCmd(&configPath))
	return root
}

func loadApp(configPath string) (*bootstrap.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// withApp restores the persisted session before the command body runs, so an
// unexpired token from a previous run is honored.
func withApp(configPath string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	ctx := context.Background()
	app.AuthCLI.Restore(ctx)
	app.ChatUC.Restore(ctx)
	return fn(ctx, app)
}

func newTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run taskdeck terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*configPath, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newLoginCmd(configPath *string) *cobra.Command {
	var email, password string
	login := &cobra.Command{
		Use:   "login --email <email> --password <password>",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AuthCLI.Login(ctx, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", out.Name, out.Email)
				return nil
			})
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	login.Flags().StringVar(&password, "password", "", "account password")
	return login
}

func newRegisterCmd(configPath *string) *cobra.Command {
	var email, password string
	register := &cobra.Command{
		Use:   "register --email <email> --password <password>",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.AuthCLI.Register(ctx, email, password)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s (%s)\n", out.Name, out.Email)
				return nil
			})
		},
	}
	register.Flags().StringVar(&email, "email", "", "account email")
	register.Flags().StringVar(&password, "password", "", "account password")
	return register
}

func newLogoutCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				app.AuthCLI.Logout(ctx)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newWhoamiCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out := app.AuthCLI.Current(ctx)
				if !out.Authenticated {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) since %s\n", out.Name, out.Email, out.CreatedAt.Format(time.RFC3339))
				return nil
			})
		},
	}
}

func newTaskCmd(configPath *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Task operations"}

	var filter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.List(ctx, filter)
				if err != nil {
					return err
				}
				printTasks(cmd, out)
				return nil
			})
		},
	}
	list.Flags().StringVar(&filter, "filter", "", "filter: all|active|completed")
	task.AddCommand(list)

	var title, description string
	add := &cobra.Command{
		Use:   "add --title <title>",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.Add(ctx, title, description)
				if err != nil {
					return err
				}
				printTasks(cmd, out)
				return nil
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "task title")
	add.Flags().StringVar(&description, "description", "", "task description")
	task.AddCommand(add)

	var updateID, updateTitle, updateDescription string
	var updateCompleted bool
	update := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Update task fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(updateID) == "" {
				return fmt.Errorf("--id is required")
			}
			input := tasksdto.UpdateInput{ID: updateID}
			if cmd.Flags().Changed("title") {
				input.Title = &updateTitle
			}
			if cmd.Flags().Changed("description") {
				input.Description = &updateDescription
			}
			if cmd.Flags().Changed("completed") {
				input.Completed = &updateCompleted
			}
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.Update(ctx, input)
				if err != nil {
					return err
				}
				printTasks(cmd, out)
				return nil
			})
		},
	}
	update.Flags().StringVar(&updateID, "id", "", "task id")
	update.Flags().StringVar(&updateTitle, "title", "", "new title")
	update.Flags().StringVar(&updateDescription, "description", "", "new description")
	update.Flags().BoolVar(&updateCompleted, "completed", false, "completed flag")
	task.AddCommand(update)

	var toggleID string
	toggle := &cobra.Command{
		Use:   "toggle --id <id>",
		Short: "Toggle task completion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(toggleID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.Toggle(ctx, toggleID)
				if err != nil {
					return err
				}
				printTasks(cmd, out)
				return nil
			})
		},
	}
	toggle.Flags().StringVar(&toggleID, "id", "", "task id")
	task.AddCommand(toggle)

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TasksCLI.Delete(ctx, deleteID)
				if err != nil {
					return err
				}
				printTasks(cmd, out)
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "task id")
	task.AddCommand(deleteCmd)

	return task
}

func printTasks(cmd *cobra.Command, out tasksdto.StateOutput) {
	if len(out.Tasks) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no tasks (%s)\n", out.ActiveFilter)
		return
	}
	for _, t := range out.Tasks {
		marker := " "
		if t.Completed {
			marker = "x"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\t%s\n", marker, t.ID, t.Title)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d total, %d active, %d completed\n", out.TotalCount, out.ActiveCount, out.CompletedCount)
}

func newChatCmd(configPath *string) *cobra.Command {
	chat := &cobra.Command{Use: "chat", Short: "Chat operations"}

	send := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a chat message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ChatCLI.Send(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if len(out.Messages) > 0 {
					last := out.Messages[len(out.Messages)-1]
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), last.Content)
					for _, call := range last.ToolCalls {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tool: %s success=%t\n", call.Tool, call.Success)
					}
				}
				return nil
			})
		},
	}
	chat.AddCommand(send)

	var historyID string
	history := &cobra.Command{
		Use:   "history",
		Short: "Show the conversation transcript",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ChatCLI.History(ctx, historyID)
				if err != nil {
					return err
				}
				if len(out.Messages) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no messages")
					return nil
				}
				for _, msg := range out.Messages {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", msg.Role, msg.Content)
				}
				return nil
			})
		},
	}
	history.Flags().StringVar(&historyID, "id", "", "conversation id (defaults to the active conversation)")
	chat.AddCommand(history)

	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ChatCLI.List(ctx, limit, offset)
				if err != nil {
					return err
				}
				if len(out.Conversations) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no conversations")
					return nil
				}
				for _, conv := range out.Conversations {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d messages\t%s\n", conv.ID, conv.MessageCount, conv.Title)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d total\n", out.Total)
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "page size")
	list.Flags().IntVar(&offset, "offset", 0, "page offset")
	chat.AddCommand(list)

	chat.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the active conversation locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				app.ChatCLI.Clear(ctx)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "conversation cleared")
				return nil
			})
		},
	})

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a conversation on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(*configPath, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ChatCLI.Delete(ctx, deleteID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted; %d conversations remain\n", out.Total)
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "conversation id")
	chat.AddCommand(deleteCmd)

	return chat
}
