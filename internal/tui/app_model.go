package tui

import (
	"context"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/collection"
	"taskdeck-cli/internal/model"
	"taskdeck-cli/internal/store"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	client   *api.Client
	sessions store.SessionStore
	session  model.Session

	width  int
	height int

	view  view
	modal modal

	projects *listState[model.Project]
	tasks    *listState[model.Task]
	users    *listState[model.User]

	// projectTasks is the second, project-scoped controller behind the
	// project detail view. A fresh instance per opened project.
	projectTasks *listState[model.Task]

	detailProject *model.Project
	detailTask    *model.Task
	detailUser    *model.User
	profile       *model.User
	detailErr     string

	// detailTaskID/detailUserID name the record the open detail view asked
	// for; responses for any other id are stale and get dropped.
	detailTaskID string
	detailUserID string

	// taskDetailFrom remembers where esc goes back to from a task detail.
	taskDetailFrom view

	authForm *form
	resForm  *form
	// editingProjectID is set while resForm edits an existing project.
	editingProjectID string

	confirm confirmState

	status   string
	flashSeq uint64
}

// loadContext: fetches triggered from the event loop are fire-and-forget;
// stale results are dropped by generation, not cancelled.
func loadContext() context.Context { return context.Background() }

func newAppModel(client *api.Client, sessions store.SessionStore) appModel {
	m := appModel{
		client:   client,
		sessions: sessions,
	}

	perPage := preferredPageSize()
	m.projects = newListState(collection.NewProjects(client, perPage),
		func(p model.Project) string { return p.ID }, projectRow)
	m.tasks = newListState(collection.NewTasks(client, "", perPage),
		func(t model.Task) string { return t.ID }, taskRow)
	m.users = newListState(collection.NewUsers(client, perPage),
		func(u model.User) string { return u.ID }, userRow)

	// Session is read once at mount; validity is discovered lazily when a
	// request comes back 401.
	if sess, err := sessions.Current(loadContext()); err == nil {
		m.session = sess
	}
	if m.session.Authenticated() {
		m.view = viewProjects
	} else {
		m.view = viewLogin
		m.authForm = newLoginForm()
	}
	return m
}

func preferredPageSize() int {
	cfg, err := store.LoadConfig()
	if err != nil || cfg.TUI == nil {
		return collection.DefaultPageSize
	}
	for _, s := range collection.PageSizes {
		if cfg.TUI.ItemsPerPage == s {
			return s
		}
	}
	return collection.DefaultPageSize
}

func projectRow(p model.Project) table.Row {
	return table.Row{p.Name, p.Description, p.Status, formatDate(p.Deadline)}
}

func taskRow(t model.Task) table.Row {
	return table.Row{t.Title, t.Description, t.Status, t.Priority, formatDate(t.DueDate)}
}

func userRow(u model.User) table.Row {
	return table.Row{u.Name, u.Email, u.Role, formatDate(u.CreatedAt)}
}

func (m appModel) Init() tea.Cmd {
	if m.view == viewProjects {
		return m.mountProjects()
	}
	return nil
}

// Mounting a list view resets its controller to fresh state (sort cleared,
// page 1) before loading; a plain reload keeps both.

func (m *appModel) mountProjects() tea.Cmd {
	m.view = viewProjects
	m.projects.ctrl.Reset()
	m.projects.refresh()
	return m.reloadProjects()
}

func (m *appModel) reloadProjects() tea.Cmd {
	return startLoad(m.projects, func(target *collection.Controller[model.Project], gen uint64, items []model.Project, err error) tea.Msg {
		return projectsLoadedMsg{target: target, gen: gen, items: items, err: err}
	})
}

func (m *appModel) mountTasks() tea.Cmd {
	m.view = viewTasks
	m.tasks.ctrl.Reset()
	m.tasks.refresh()
	return m.reloadTasks(m.tasks)
}

func (m *appModel) reloadTasks(ls *listState[model.Task]) tea.Cmd {
	return startLoad(ls, func(target *collection.Controller[model.Task], gen uint64, items []model.Task, err error) tea.Msg {
		return tasksLoadedMsg{target: target, gen: gen, items: items, err: err}
	})
}

func (m *appModel) mountUsers() tea.Cmd {
	m.view = viewUsers
	m.users.ctrl.Reset()
	m.users.refresh()
	return m.reloadUsers()
}

func (m *appModel) reloadUsers() tea.Cmd {
	return startLoad(m.users, func(target *collection.Controller[model.User], gen uint64, items []model.User, err error) tea.Msg {
		return usersLoadedMsg{target: target, gen: gen, items: items, err: err}
	})
}

func (m *appModel) mountProjectDetail(p model.Project) tea.Cmd {
	m.view = viewProjectDetail
	m.detailProject = &p
	m.detailErr = ""

	m.projectTasks = newListState(collection.NewTasks(m.client, p.ID, m.tasks.ctrl.PerPage()),
		func(t model.Task) string { return t.ID }, taskRow)
	m.projectTasks.resize(m.width, m.height)

	client := m.client
	id := p.ID
	fetchProject := func() tea.Msg {
		fresh, err := client.Project(loadContext(), id)
		return projectShownMsg{id: id, project: fresh, err: err}
	}
	return tea.Batch(fetchProject, m.reloadTasks(m.projectTasks))
}

func (m *appModel) mountTaskDetail(id string, from view) tea.Cmd {
	m.view = viewTaskDetail
	m.taskDetailFrom = from
	m.detailTask = nil
	m.detailTaskID = id
	m.detailErr = ""
	client := m.client
	return func() tea.Msg {
		t, err := client.Task(loadContext(), id)
		return taskShownMsg{id: id, task: t, err: err}
	}
}

func (m *appModel) mountUserDetail(id string) tea.Cmd {
	m.view = viewUserDetail
	m.detailUser = nil
	m.detailUserID = id
	m.detailErr = ""
	client := m.client
	return func() tea.Msg {
		u, err := client.User(loadContext(), id)
		return userShownMsg{id: id, user: u, err: err}
	}
}

func (m *appModel) mountProfile() tea.Cmd {
	m.view = viewProfile
	m.profile = nil
	m.detailErr = ""
	client := m.client
	return func() tea.Msg {
		u, err := client.Me(loadContext())
		return profileShownMsg{user: u, err: err}
	}
}

func (m *appModel) flash(text string) tea.Cmd {
	m.status = text
	m.flashSeq++
	seq := m.flashSeq
	return flashAfter(seq)
}

func (m *appModel) resizeAll() {
	for _, ls := range []interface{ resize(int, int) }{m.projects, m.tasks, m.users} {
		ls.resize(m.width, m.height)
	}
	if m.projectTasks != nil {
		m.projectTasks.resize(m.width, m.height)
	}
}

func (m *appModel) logout() tea.Cmd {
	_ = m.sessions.Logout(loadContext())
	m.session = model.Session{}
	m.view = viewLogin
	m.authForm = newLoginForm()
	return nil
}
