package tui

import (
	"strings"

	"taskdeck-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// form is a vertical stack of labelled text inputs with one focus. All
// create/edit surfaces (login, register, project, task) are forms; the
// submit action lives in the Update switch, not here.
type form struct {
	title  string
	keys   []string
	labels []string
	inputs []textinput.Model

	focus   int
	errText string
	busy    bool
}

func newForm(title string, fields ...formField) *form {
	f := &form{title: title}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Placeholder = fd.placeholder
		ti.SetValue(fd.value)
		ti.CharLimit = 256
		ti.Width = 40
		if fd.secret {
			ti.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			ti.Focus()
		}
		f.keys = append(f.keys, fd.key)
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

type formField struct {
	key         string
	label       string
	placeholder string
	value       string
	secret      bool
}

func (f *form) value(key string) string {
	for i, k := range f.keys {
		if k == key {
			return strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return ""
}

func (f *form) focusNext(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(f.title))
	b.WriteString("\n\n")
	for i := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = lipgloss.NewStyle().Bold(true).Render(label)
		} else {
			label = styleMuted().Render(label)
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n\n")
	}
	if f.errText != "" {
		b.WriteString(styleError().Render(f.errText) + "\n\n")
	}
	if f.busy {
		b.WriteString(styleMuted().Render("working...") + "\n")
	}
	return b.String()
}

func newLoginForm() *form {
	return newForm("Login",
		formField{key: "email", label: "Email", placeholder: "you@example.com"},
		formField{key: "password", label: "Password", secret: true},
	)
}

func newRegisterForm() *form {
	return newForm("Register",
		formField{key: "name", label: "Name"},
		formField{key: "email", label: "Email", placeholder: "you@example.com"},
		formField{key: "password", label: "Password", secret: true},
	)
}

// newProjectForm edits an existing project when one is given, otherwise it
// creates. Status is free text on purpose: unknown values pass through to
// the server unvalidated, same as the web client.
func newProjectForm(existing *model.Project) *form {
	title := "New project"
	var name, description, status, deadline string
	if existing != nil {
		title = "Edit project"
		name = existing.Name
		description = existing.Description
		status = existing.Status
		deadline = existing.Deadline
	} else {
		status = model.ProjectStatusPending
	}
	return newForm(title,
		formField{key: "name", label: "Name", value: name},
		formField{key: "description", label: "Description", value: description},
		formField{key: "status", label: "Status (Pending|In Progress|Completed)", value: status},
		formField{key: "deadline", label: "Deadline (YYYY-MM-DD)", value: deadline},
	)
}

func newTaskForm() *form {
	return newForm("New task",
		formField{key: "title", label: "Title"},
		formField{key: "description", label: "Description"},
		formField{key: "status", label: "Status", value: model.ProjectStatusPending},
		formField{key: "priority", label: "Priority (Low|Medium|High)", value: model.TaskPriorityMedium},
		formField{key: "due_date", label: "Due date (YYYY-MM-DD)"},
	)
}
