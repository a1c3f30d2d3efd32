package tui

import (
	"strings"

	"taskdeck-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Detail views. Labels are muted, values plain, descriptions render as
// markdown. Fetch failures degrade to an error line in place of the record.

func detailRow(label, value string) string {
	return styleMuted().Render(label+":") + " " + value
}

func (m appModel) detailWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m appModel) viewProjectDetail() string {
	if m.detailErr != "" && m.detailProject == nil {
		return styleError().Render(m.detailErr)
	}
	p := m.detailProject
	if p == nil {
		return styleMuted().Render("loading...")
	}

	head := lipgloss.NewStyle().Bold(true).Render(p.Name) + "  " + projectStatusBadge(p.Status)
	lines := []string{
		head,
		detailRow("Deadline", formatDate(p.Deadline)),
	}
	if desc := renderMarkdown(p.Description, m.detailWidth()); desc != "" {
		lines = append(lines, "", desc)
	}
	if m.detailErr != "" {
		lines = append(lines, "", styleError().Render(m.detailErr))
	}

	tasks := ""
	if m.projectTasks != nil {
		tasks = m.projectTasks.render("Tasks")
	}
	return strings.Join(lines, "\n") + "\n\n" + tasks
}

func (m appModel) viewTaskDetail() string {
	if m.detailErr != "" {
		return styleError().Render(m.detailErr)
	}
	t := m.detailTask
	if t == nil {
		return styleMuted().Render("loading...")
	}

	head := lipgloss.NewStyle().Bold(true).Render(t.Title)
	lines := []string{
		head,
		detailRow("Status", projectStatusBadge(t.Status)),
		detailRow("Priority", taskPriorityBadge(t.Priority)),
		detailRow("Due", formatDate(t.DueDate)),
		detailRow("Assigned to", fallbackLabel(t.AssignedTo)),
		detailRow("Created", formatDate(t.CreatedAt)),
		detailRow("Updated", formatDate(t.UpdatedAt)),
	}
	if desc := renderMarkdown(t.Description, m.detailWidth()); desc != "" {
		lines = append(lines, "", desc)
	}
	return strings.Join(lines, "\n")
}

func renderUserCard(u *model.User, errText string) string {
	if errText != "" {
		return styleError().Render(errText)
	}
	if u == nil {
		return styleMuted().Render("loading...")
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(u.Name) + "  " + roleBadge(u.Role),
		detailRow("Email", u.Email),
		detailRow("Joined", formatDate(u.CreatedAt)),
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewUserDetail() string {
	return renderUserCard(m.detailUser, m.detailErr)
}

func (m appModel) viewProfile() string {
	return renderUserCard(m.profile, m.detailErr)
}
