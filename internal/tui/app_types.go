package tui

import (
	"taskdeck-cli/internal/collection"
	"taskdeck-cli/internal/model"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewProjects
	viewProjectDetail
	viewProjectForm
	viewTasks
	viewTaskDetail
	viewTaskForm
	viewUsers
	viewUserDetail
	viewProfile
)

// chromeHidden reports whether the navigation shell (header nav + footer
// help) stays hidden, which is the case on the auth views only.
func chromeHidden(v view) bool {
	return v == viewLogin || v == viewRegister
}

type modal int

const (
	modalNone modal = iota
	modalConfirmDelete
)

// confirmState names the doomed item while the delete modal is up.
type confirmState struct {
	kind  string // "project", "task", "user"
	id    string
	name  string
	focus confirmFocus
}

type confirmFocus int

const (
	confirmFocusConfirm confirmFocus = iota
	confirmFocusCancel
)

// Fetch results carry the controller they were started for plus the load
// generation; Update only applies them when both still match, so responses
// for a reloaded or remounted view fall on the floor.

type projectsLoadedMsg struct {
	target *collection.Controller[model.Project]
	gen    uint64
	items  []model.Project
	err    error
}

type tasksLoadedMsg struct {
	target *collection.Controller[model.Task]
	gen    uint64
	items  []model.Task
	err    error
}

type usersLoadedMsg struct {
	target *collection.Controller[model.User]
	gen    uint64
	items  []model.User
	err    error
}

type projectShownMsg struct {
	id      string
	project model.Project
	err     error
}

type taskShownMsg struct {
	id   string
	task model.Task
	err  error
}

type userShownMsg struct {
	id   string
	user model.User
	err  error
}

type profileShownMsg struct {
	user model.User
	err  error
}

// Mutation results. Like fetches, deletes and form submissions run as
// commands; the local state change happens when the result message arrives
// back on the event loop.

type deleteDoneMsg struct {
	kind string
	id   string
	name string
	err  error
}

type projectSavedMsg struct {
	project model.Project
	editing bool
	err     error
}

type taskSavedMsg struct {
	task model.Task
	err  error
}

type loginDoneMsg struct {
	res model.LoginResponse
	err error
}

type registerDoneMsg struct {
	user model.User
	err  error
}

type flashDoneMsg struct {
	seq uint64
}
