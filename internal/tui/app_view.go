package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.modal == modalConfirmDelete {
		return strings.Join([]string{m.header(), renderConfirmModal(m.width, m.confirm)}, "\n\n")
	}

	var body string
	switch m.view {
	case viewLogin, viewRegister:
		body = m.viewAuth()
	case viewProjects:
		body = m.projects.render("Projects")
	case viewTasks:
		body = m.tasks.render("Tasks")
	case viewUsers:
		body = m.users.render("Users")
	case viewProjectDetail:
		body = m.viewProjectDetail()
	case viewTaskDetail:
		body = m.viewTaskDetail()
	case viewUserDetail:
		body = m.viewUserDetail()
	case viewProfile:
		body = m.viewProfile()
	case viewProjectForm, viewTaskForm:
		body = m.resForm.view()
	}

	if chromeHidden(m.view) {
		return body
	}

	parts := []string{m.header(), body, m.footer()}
	if m.status != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Render(m.status))
	}
	return strings.Join(parts, "\n\n")
}

// header is the navigation shell: brand, section tabs and the signed-in
// identity. Hidden entirely on the auth views.
func (m appModel) header() string {
	brand := lipgloss.NewStyle().Bold(true).Render("Taskdeck")

	sections := []struct {
		label  string
		active bool
	}{
		{"Projects", m.view == viewProjects || m.view == viewProjectDetail || m.view == viewProjectForm || m.view == viewTaskForm},
		{"Tasks", m.view == viewTasks || m.view == viewTaskDetail},
		{"Users", m.view == viewUsers || m.view == viewUserDetail},
	}
	tabs := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.active {
			tabs = append(tabs, lipgloss.NewStyle().Bold(true).Underline(true).Render(s.label))
		} else {
			tabs = append(tabs, styleMuted().Render(s.label))
		}
	}

	identity := styleMuted().Render("not signed in")
	if m.session.Authenticated() {
		identity = styleMuted().Render(m.session.User.Name + " (" + m.session.User.Role + ")")
	}

	return brand + "  " + strings.Join(tabs, "  ") + "  " + identity
}

func (m appModel) footer() string {
	var help string
	switch m.view {
	case viewProjects:
		help = "1-4: sort  [/]: page  p: page size  enter: open  n: new  e: edit  d: delete  tab: tasks  r: reload  @: profile  x: sign out  q: quit"
	case viewTasks:
		help = "1-5: sort  [/]: page  p: page size  enter: open  d: delete  tab: users  r: reload  q: quit"
	case viewUsers:
		help = "1-4: sort  [/]: page  p: page size  enter: open  d: delete  tab: projects  r: reload  q: quit"
	case viewProjectDetail:
		help = "1-5: sort tasks  [/]: page  enter: open task  n: new task  e: edit project  d: delete task  esc: back  q: quit"
	case viewProjectForm, viewTaskForm:
		help = "tab: next field  enter: save  esc: cancel"
	default:
		help = "esc: back  q: quit"
	}
	return styleMuted().Render(help)
}

func (m appModel) viewAuth() string {
	hint := "enter: submit  tab: next field  ctrl+r: register  ctrl+c: quit"
	if m.view == viewRegister {
		hint = "enter: submit  tab: next field  esc: back to login  ctrl+c: quit"
	}
	return m.authForm.view() + styleMuted().Render(hint)
}
