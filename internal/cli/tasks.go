package cli

import (
	"strings"

	"taskdeck-cli/internal/collection"
	"taskdeck-cli/internal/model"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var flags listFlags
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (optionally scoped to one project)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := collection.NewTasks(app.client(), projectID, flags.perPage)
			return runList(cmd, app, ctrl, flags, func(t model.Task) []string {
				return []string{t.Title, t.Description, t.Status, t.Priority, shortDate(t.DueDate)}
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&projectID, "project", "", "Only tasks of this project")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.client().Task(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var title, description, status, priority, dueDate, projectID, assignedTo string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.client().CreateTask(cmd.Context(), model.NewTask{
				Title:       strings.TrimSpace(title),
				Description: description,
				Status:      status,
				Priority:    priority,
				DueDate:     dueDate,
				ProjectID:   projectID,
				AssignedTo:  assignedTo,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", model.ProjectStatusPending, "Status")
	cmd.Flags().StringVar(&priority, "priority", model.TaskPriorityMedium, "Priority (Low|Medium|High)")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&projectID, "project", "", "Parent project id")
	cmd.Flags().StringVar(&assignedTo, "assign", "", "Assignee user id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var title, description, status, priority, dueDate, assignedTo string

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := app.client()

			// Start from the server copy so unset flags keep their value.
			cur, err := client.Task(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			upd := model.NewTask{
				Title:       cur.Title,
				Description: cur.Description,
				Status:      cur.Status,
				Priority:    cur.Priority,
				DueDate:     cur.DueDate,
				ProjectID:   cur.ProjectID,
				AssignedTo:  cur.AssignedTo,
			}
			if cmd.Flags().Changed("title") {
				upd.Title = strings.TrimSpace(title)
			}
			if cmd.Flags().Changed("description") {
				upd.Description = description
			}
			if cmd.Flags().Changed("status") {
				upd.Status = status
			}
			if cmd.Flags().Changed("priority") {
				upd.Priority = priority
			}
			if cmd.Flags().Changed("due") {
				upd.DueDate = dueDate
			}
			if cmd.Flags().Changed("assign") {
				upd.AssignedTo = assignedTo
			}

			t, err := client.UpdateTask(ctx, args[0], upd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "Status")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (Low|Medium|High)")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assignedTo, "assign", "", "Assignee user id")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client().DeleteTask(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}})
		},
	}
}
