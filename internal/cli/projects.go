package cli

import (
	"strings"

	"taskdeck-cli/internal/collection"
	"taskdeck-cli/internal/model"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsUpdateCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := collection.NewProjects(app.client(), flags.perPage)
			return runList(cmd, app, ctrl, flags, func(p model.Project) []string {
				return []string{p.Name, p.Description, p.Status, shortDate(p.Deadline)}
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.client().Project(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name, description, status, deadline string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.client().CreateProject(cmd.Context(), model.NewProject{
				Name:        strings.TrimSpace(name),
				Description: description,
				Status:      status,
				Deadline:    deadline,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&status, "status", model.ProjectStatusPending, "Status (Pending|In Progress|Completed)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsUpdateCmd(app *App) *cobra.Command {
	var name, description, status, deadline string

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := app.client()

			// Start from the server copy so unset flags keep their value.
			cur, err := client.Project(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			upd := model.NewProject{
				Name:        cur.Name,
				Description: cur.Description,
				Status:      cur.Status,
				Deadline:    cur.Deadline,
			}
			if cmd.Flags().Changed("name") {
				upd.Name = strings.TrimSpace(name)
			}
			if cmd.Flags().Changed("description") {
				upd.Description = description
			}
			if cmd.Flags().Changed("status") {
				upd.Status = status
			}
			if cmd.Flags().Changed("deadline") {
				upd.Deadline = deadline
			}

			p, err := client.UpdateProject(ctx, args[0], upd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&status, "status", "", "Status (Pending|In Progress|Completed)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client().DeleteProject(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}})
		},
	}
}
