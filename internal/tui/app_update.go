package tui

import (
	"context"
	"time"

	"taskdeck-cli/internal/model"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func flashAfter(seq uint64) tea.Cmd {
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeAll()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.projects.loading {
			cmds = append(cmds, m.projects.update(msg))
		}
		if m.tasks.loading {
			cmds = append(cmds, m.tasks.update(msg))
		}
		if m.users.loading {
			cmds = append(cmds, m.users.update(msg))
		}
		if m.projectTasks != nil && m.projectTasks.loading {
			cmds = append(cmds, m.projectTasks.update(msg))
		}
		return m, tea.Batch(cmds...)

	case projectsLoadedMsg:
		if msg.target == m.projects.ctrl {
			m.projects.finishLoad(msg.gen, msg.items, msg.err)
		}
		return m, nil

	case tasksLoadedMsg:
		// Two task controllers may be alive (all tasks, project-scoped);
		// route by controller identity so a result from a closed project
		// view cannot land on the open one.
		if msg.target == m.tasks.ctrl {
			m.tasks.finishLoad(msg.gen, msg.items, msg.err)
		} else if m.projectTasks != nil && msg.target == m.projectTasks.ctrl {
			m.projectTasks.finishLoad(msg.gen, msg.items, msg.err)
		}
		return m, nil

	case usersLoadedMsg:
		if msg.target == m.users.ctrl {
			m.users.finishLoad(msg.gen, msg.items, msg.err)
		}
		return m, nil

	case projectShownMsg:
		if m.view == viewProjectDetail && m.detailProject != nil && m.detailProject.ID == msg.id {
			if msg.err != nil {
				m.detailErr = msg.err.Error()
			} else {
				p := msg.project
				m.detailProject = &p
			}
		}
		return m, nil

	case taskShownMsg:
		// Gate on the requested id as well as the view: a slow response for
		// a task whose detail was closed (or replaced by another task's)
		// must not land.
		if m.view == viewTaskDetail && msg.id == m.detailTaskID {
			if msg.err != nil {
				m.detailErr = msg.err.Error()
			} else {
				t := msg.task
				m.detailTask = &t
			}
		}
		return m, nil

	case userShownMsg:
		if m.view == viewUserDetail && msg.id == m.detailUserID {
			if msg.err != nil {
				m.detailErr = msg.err.Error()
			} else {
				u := msg.user
				m.detailUser = &u
			}
		}
		return m, nil

	case profileShownMsg:
		if m.view == viewProfile {
			if msg.err != nil {
				m.detailErr = msg.err.Error()
			} else {
				u := msg.user
				m.profile = &u
			}
		}
		return m, nil

	case loginDoneMsg:
		if m.view != viewLogin || m.authForm == nil {
			return m, nil
		}
		m.authForm.busy = false
		if msg.err != nil {
			m.authForm.errText = msg.err.Error()
			return m, nil
		}
		if err := m.sessions.Login(loadContext(), msg.res.AccessToken, msg.res.SessionUser()); err != nil {
			m.authForm.errText = err.Error()
			return m, nil
		}
		m.session = model.Session{Token: msg.res.AccessToken, User: msg.res.SessionUser()}
		m.authForm = nil
		return m, m.mountProjects()

	case registerDoneMsg:
		if m.view != viewRegister || m.authForm == nil {
			return m, nil
		}
		m.authForm.busy = false
		if msg.err != nil {
			m.authForm.errText = msg.err.Error()
			return m, nil
		}
		m.view = viewLogin
		m.authForm = newLoginForm()
		cmd := m.flash("Account created, sign in")
		return m, cmd

	case deleteDoneMsg:
		return m.applyDelete(msg)

	case projectSavedMsg:
		if m.view != viewProjectForm || m.resForm == nil {
			return m, nil
		}
		m.resForm.busy = false
		if msg.err != nil {
			m.resForm.errText = msg.err.Error()
			return m, nil
		}
		if msg.editing && m.detailProject != nil && m.detailProject.ID == msg.project.ID {
			p := msg.project
			m.detailProject = &p
		}
		label := "Project created"
		if msg.editing {
			label = "Project updated"
		}
		m.editingProjectID = ""
		next, cmd := m.closeResourceForm(true)
		app := next.(appModel)
		flashCmd := app.flash(label)
		return app, tea.Batch(cmd, flashCmd)

	case taskSavedMsg:
		if m.view != viewTaskForm || m.resForm == nil {
			return m, nil
		}
		m.resForm.busy = false
		if msg.err != nil {
			m.resForm.errText = msg.err.Error()
			return m, nil
		}
		next, cmd := m.closeResourceForm(true)
		app := next.(appModel)
		flashCmd := app.flash("Task created")
		return app, tea.Batch(cmd, flashCmd)

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal == modalConfirmDelete {
		return m.updateConfirmModal(key)
	}

	switch m.view {
	case viewLogin:
		return m.updateLogin(msg)
	case viewRegister:
		return m.updateRegister(msg)
	case viewProjects:
		return m.updateProjectsList(msg)
	case viewTasks:
		return m.updateTasksList(msg)
	case viewUsers:
		return m.updateUsersList(msg)
	case viewProjectDetail:
		return m.updateProjectDetail(msg)
	case viewProjectForm, viewTaskForm:
		return m.updateResourceForm(msg)
	case viewTaskDetail:
		if key == "esc" || key == "backspace" {
			m.view = m.taskDetailFrom
			m.detailTask = nil
			return m, nil
		}
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil
	case viewUserDetail:
		if key == "esc" || key == "backspace" {
			m.view = viewUsers
			m.detailUser = nil
			return m, nil
		}
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil
	case viewProfile:
		if key == "esc" || key == "backspace" {
			m.view = viewProjects
			m.profile = nil
			return m, nil
		}
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateConfirmModal(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirm.focus == confirmFocusCancel {
			m.modal = modalNone
			return m, nil
		}
		return m.executeDelete()
	}
	return m, nil
}

// executeDelete closes the modal and runs the DELETE as a command, like a
// fetch; the local discard happens when deleteDoneMsg lands, so the event
// loop never blocks on the network.
func (m appModel) executeDelete() (tea.Model, tea.Cmd) {
	m.modal = modalNone
	var remote func(ctx context.Context, id string) error
	switch {
	case m.view == viewProjects && m.confirm.kind == "project":
		remote = m.projects.ctrl.RemoveRemote
	case m.view == viewProjectDetail && m.confirm.kind == "task" && m.projectTasks != nil:
		remote = m.projectTasks.ctrl.RemoveRemote
	case m.view == viewTasks && m.confirm.kind == "task":
		remote = m.tasks.ctrl.RemoveRemote
	case m.view == viewUsers && m.confirm.kind == "user":
		remote = m.users.ctrl.RemoveRemote
	default:
		return m, nil
	}
	c := m.confirm
	return m, func() tea.Msg {
		err := remote(loadContext(), c.id)
		return deleteDoneMsg{kind: c.kind, id: c.id, name: c.name, err: err}
	}
}

// applyDelete installs a finished delete: drop the item from every
// controller that may hold it and re-clamp. On failure nothing local
// changes and the server's detail shows in the flash line.
func (m appModel) applyDelete(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		cmd := m.flash("Delete failed: " + msg.err.Error())
		return m, cmd
	}
	switch msg.kind {
	case "project":
		m.projects.ctrl.Discard(msg.id)
		m.projects.refresh()
	case "task":
		m.tasks.ctrl.Discard(msg.id)
		m.tasks.refresh()
		if m.projectTasks != nil {
			m.projectTasks.ctrl.Discard(msg.id)
			m.projectTasks.refresh()
		}
	case "user":
		m.users.ctrl.Discard(msg.id)
		m.users.refresh()
	}
	cmd := m.flash("Deleted " + msg.name)
	return m, cmd
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.authForm.focusNext(1)
		return m, nil
	case "shift+tab", "up":
		m.authForm.focusNext(-1)
		return m, nil
	case "ctrl+r":
		m.view = viewRegister
		m.authForm = newRegisterForm()
		return m, nil
	case "enter":
		if m.authForm.busy {
			return m, nil
		}
		email := m.authForm.value("email")
		password := m.authForm.value("password")
		if email == "" || password == "" {
			m.authForm.errText = "email and password are required"
			return m, nil
		}
		m.authForm.busy = true
		m.authForm.errText = ""
		client := m.client
		return m, func() tea.Msg {
			res, err := client.Login(loadContext(), email, password)
			return loginDoneMsg{res: res, err: err}
		}
	default:
		return m, m.authForm.update(msg)
	}
}

func (m appModel) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.authForm.focusNext(1)
		return m, nil
	case "shift+tab", "up":
		m.authForm.focusNext(-1)
		return m, nil
	case "esc":
		m.view = viewLogin
		m.authForm = newLoginForm()
		return m, nil
	case "enter":
		if m.authForm.busy {
			return m, nil
		}
		u := model.NewUser{
			Name:     m.authForm.value("name"),
			Email:    m.authForm.value("email"),
			Password: m.authForm.value("password"),
		}
		if u.Name == "" || u.Email == "" || u.Password == "" {
			m.authForm.errText = "all fields are required"
			return m, nil
		}
		m.authForm.busy = true
		m.authForm.errText = ""
		client := m.client
		return m, func() tea.Msg {
			created, err := client.Register(loadContext(), u)
			return registerDoneMsg{user: created, err: err}
		}
	default:
		return m, m.authForm.update(msg)
	}
}

func (m appModel) updateProjectsList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		return m, m.mountTasks()
	case "r":
		return m, m.reloadProjects()
	case "x":
		return m, m.logout()
	case "@":
		return m, m.mountProfile()
	case "n":
		m.view = viewProjectForm
		m.resForm = newProjectForm(nil)
		m.editingProjectID = ""
		return m, nil
	case "e":
		if p, ok := m.projects.selected(); ok {
			m.view = viewProjectForm
			m.resForm = newProjectForm(&p)
			m.editingProjectID = p.ID
		}
		return m, nil
	case "d":
		if p, ok := m.projects.selected(); ok {
			m.modal = modalConfirmDelete
			m.confirm = confirmState{kind: "project", id: p.ID, name: p.Name}
		}
		return m, nil
	case "enter":
		if p, ok := m.projects.selected(); ok {
			return m, m.mountProjectDetail(p)
		}
		return m, nil
	}
	if m.projects.handleKey(msg.String()) {
		return m, nil
	}
	return m, m.projects.update(msg)
}

func (m appModel) updateTasksList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		return m, m.mountUsers()
	case "r":
		return m, m.reloadTasks(m.tasks)
	case "x":
		return m, m.logout()
	case "@":
		return m, m.mountProfile()
	case "d":
		if t, ok := m.tasks.selected(); ok {
			m.modal = modalConfirmDelete
			m.confirm = confirmState{kind: "task", id: t.ID, name: t.Title}
		}
		return m, nil
	case "enter":
		if t, ok := m.tasks.selected(); ok {
			return m, m.mountTaskDetail(t.ID, viewTasks)
		}
		return m, nil
	}
	if m.tasks.handleKey(msg.String()) {
		return m, nil
	}
	return m, m.tasks.update(msg)
}

func (m appModel) updateUsersList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		return m, m.mountProjects()
	case "r":
		return m, m.reloadUsers()
	case "x":
		return m, m.logout()
	case "@":
		return m, m.mountProfile()
	case "d":
		if u, ok := m.users.selected(); ok {
			m.modal = modalConfirmDelete
			m.confirm = confirmState{kind: "user", id: u.ID, name: u.Name}
		}
		return m, nil
	case "enter":
		if u, ok := m.users.selected(); ok {
			return m, m.mountUserDetail(u.ID)
		}
		return m, nil
	}
	if m.users.handleKey(msg.String()) {
		return m, nil
	}
	return m, m.users.update(msg)
}

func (m appModel) updateProjectDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.detailProject = nil
		m.projectTasks = nil
		m.view = viewProjects
		return m, nil
	case "r":
		if m.projectTasks != nil {
			return m, m.reloadTasks(m.projectTasks)
		}
		return m, nil
	case "n":
		m.view = viewTaskForm
		m.resForm = newTaskForm()
		return m, nil
	case "e":
		if m.detailProject != nil {
			m.view = viewProjectForm
			m.resForm = newProjectForm(m.detailProject)
			m.editingProjectID = m.detailProject.ID
		}
		return m, nil
	case "d":
		if m.projectTasks != nil {
			if t, ok := m.projectTasks.selected(); ok {
				m.modal = modalConfirmDelete
				m.confirm = confirmState{kind: "task", id: t.ID, name: t.Title}
			}
		}
		return m, nil
	case "enter":
		if m.projectTasks != nil {
			if t, ok := m.projectTasks.selected(); ok {
				return m, m.mountTaskDetail(t.ID, viewProjectDetail)
			}
		}
		return m, nil
	}
	if m.projectTasks != nil {
		if m.projectTasks.handleKey(msg.String()) {
			return m, nil
		}
		return m, m.projectTasks.update(msg)
	}
	return m, nil
}

// updateResourceForm drives both the project form (create or edit) and the
// task form. Enter hands off to submitResourceForm.
func (m appModel) updateResourceForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.resForm.focusNext(1)
		return m, nil
	case "shift+tab", "up":
		m.resForm.focusNext(-1)
		return m, nil
	case "esc":
		return m.closeResourceForm(false)
	case "enter":
		return m.submitResourceForm()
	default:
		return m, m.resForm.update(msg)
	}
}

func (m appModel) closeResourceForm(saved bool) (tea.Model, tea.Cmd) {
	wasTask := m.view == viewTaskForm
	m.resForm = nil
	if wasTask || m.detailProject != nil {
		m.view = viewProjectDetail
		if saved && m.projectTasks != nil {
			return m, m.reloadTasks(m.projectTasks)
		}
		return m, nil
	}
	m.view = viewProjects
	if saved {
		return m, m.reloadProjects()
	}
	return m, nil
}

// submitResourceForm validates locally, then runs the create/update as a
// command. The form stays up (busy) until the saved message comes back;
// failure keeps it up with the server's detail text.
func (m appModel) submitResourceForm() (tea.Model, tea.Cmd) {
	if m.resForm.busy {
		return m, nil
	}

	if m.view == viewTaskForm {
		if m.detailProject == nil {
			return m.closeResourceForm(false)
		}
		t := model.NewTask{
			Title:       m.resForm.value("title"),
			Description: m.resForm.value("description"),
			Status:      m.resForm.value("status"),
			Priority:    m.resForm.value("priority"),
			DueDate:     m.resForm.value("due_date"),
			ProjectID:   m.detailProject.ID,
		}
		if t.Title == "" {
			m.resForm.errText = "title is required"
			return m, nil
		}
		m.resForm.busy = true
		m.resForm.errText = ""
		client := m.client
		return m, func() tea.Msg {
			created, err := client.CreateTask(loadContext(), t)
			return taskSavedMsg{task: created, err: err}
		}
	}

	p := model.NewProject{
		Name:        m.resForm.value("name"),
		Description: m.resForm.value("description"),
		Status:      m.resForm.value("status"),
		Deadline:    m.resForm.value("deadline"),
	}
	if p.Name == "" {
		m.resForm.errText = "name is required"
		return m, nil
	}
	m.resForm.busy = true
	m.resForm.errText = ""
	client := m.client
	editingID := m.editingProjectID
	return m, func() tea.Msg {
		if editingID != "" {
			updated, err := client.UpdateProject(loadContext(), editingID, p)
			return projectSavedMsg{project: updated, editing: true, err: err}
		}
		created, err := client.CreateProject(loadContext(), p)
		return projectSavedMsg{project: created, err: err}
	}
}
