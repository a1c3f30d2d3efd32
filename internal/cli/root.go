package cli

import (
	"fmt"
	"os"
	"strings"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/format"
	"taskdeck-cli/internal/store"
	"taskdeck-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Taskdeck terminal front end (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskdeck

  # Sign in, then script against the API
  taskdeck login --email ana@example.com --password secret
  taskdeck projects list --sort deadline --desc --per-page 10
  taskdeck tasks list --project <project-id> --format table
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("TASKDECK_API_URL", ""), "Backend base URL (default: config apiUrl or http://localhost:8000)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKDECK_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newUsersCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sessions := store.SessionStore{}
	client := api.New(api.Config{
		BaseURL: store.ResolveAPIURL(app.APIURL),
		Tokens:  sessions,
	})
	return tui.Run(client, sessions)
}

func (app *App) sessions() store.SessionStore {
	return store.SessionStore{}
}

func (app *App) client() *api.Client {
	return api.New(api.Config{
		BaseURL: store.ResolveAPIURL(app.APIURL),
		Tokens:  app.sessions(),
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
