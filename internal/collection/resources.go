package collection

import (
	"context"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/model"
)

// Per-resource controller wiring. These are the only places that know which
// fields of each resource are sortable and how a collection is fetched and
// deleted, so TUI and CLI list surfaces cannot drift apart.

func ProjectFields() []Field[model.Project] {
	return []Field[model.Project]{
		{Key: "name", Label: "Name", Value: func(p model.Project) string { return p.Name }},
		{Key: "description", Label: "Description", Value: func(p model.Project) string { return p.Description }},
		{Key: "status", Label: "Status", Value: func(p model.Project) string { return p.Status }},
		{Key: "deadline", Label: "Deadline", Value: func(p model.Project) string { return p.Deadline }, Date: true},
	}
}

// TaskFields sorts by due_date, not the "deadline" key projects use; the two
// resources genuinely differ here.
func TaskFields() []Field[model.Task] {
	return []Field[model.Task]{
		{Key: "title", Label: "Title", Value: func(t model.Task) string { return t.Title }},
		{Key: "description", Label: "Description", Value: func(t model.Task) string { return t.Description }},
		{Key: "status", Label: "Status", Value: func(t model.Task) string { return t.Status }},
		{Key: "priority", Label: "Priority", Value: func(t model.Task) string { return t.Priority }},
		{Key: "due_date", Label: "Due", Value: func(t model.Task) string { return t.DueDate }, Date: true},
	}
}

func UserFields() []Field[model.User] {
	return []Field[model.User]{
		{Key: "name", Label: "Name", Value: func(u model.User) string { return u.Name }},
		{Key: "email", Label: "Email", Value: func(u model.User) string { return u.Email }},
		{Key: "role", Label: "Role", Value: func(u model.User) string { return u.Role }},
		{Key: "created_at", Label: "Joined", Value: func(u model.User) string { return u.CreatedAt }, Date: true},
	}
}

func NewProjects(client *api.Client, perPage int) *Controller[model.Project] {
	return New(Config[model.Project]{
		Fields:  ProjectFields(),
		ID:      func(p model.Project) string { return p.ID },
		Fetch:   client.Projects,
		Remove:  client.DeleteProject,
		PerPage: perPage,
	})
}

// NewTasks scopes the fetch to one project when projectID is non-empty (the
// project detail view); empty fetches every task.
func NewTasks(client *api.Client, projectID string, perPage int) *Controller[model.Task] {
	return New(Config[model.Task]{
		Fields: TaskFields(),
		ID:     func(t model.Task) string { return t.ID },
		Fetch: func(ctx context.Context) ([]model.Task, error) {
			return client.Tasks(ctx, projectID)
		},
		Remove:  client.DeleteTask,
		PerPage: perPage,
	})
}

func NewUsers(client *api.Client, perPage int) *Controller[model.User] {
	return New(Config[model.User]{
		Fields:  UserFields(),
		ID:      func(u model.User) string { return u.ID },
		Fetch:   client.Users,
		Remove:  client.DeleteUser,
		PerPage: perPage,
	})
}
