package tui

import (
	"strings"

	"taskdeck-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Enumeration badges. The mappings are exhaustive over the known values with
// a gray fallback for anything else; unknown values are rendered, never
// rejected (the server owns validation).

func badge(color lipgloss.TerminalColor, label string) string {
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(label)
}

func projectStatusBadge(status string) string {
	switch status {
	case model.ProjectStatusPending:
		return badge(colorBadgeWarning, status)
	case model.ProjectStatusInProgress:
		return badge(colorBadgePrimary, status)
	case model.ProjectStatusCompleted:
		return badge(colorBadgeSuccess, status)
	default:
		return badge(colorBadgeSecondary, fallbackLabel(status))
	}
}

func taskPriorityBadge(priority string) string {
	switch priority {
	case model.TaskPriorityLow:
		return badge(colorBadgeSuccess, priority)
	case model.TaskPriorityMedium:
		return badge(colorBadgeWarning, priority)
	case model.TaskPriorityHigh:
		return badge(colorBadgeDanger, priority)
	default:
		return badge(colorBadgeSecondary, fallbackLabel(priority))
	}
}

func roleBadge(role string) string {
	switch role {
	case model.UserRoleAdmin:
		return badge(colorBadgeDanger, role)
	case model.UserRoleLeader:
		return badge(colorBadgePrimary, role)
	case model.UserRoleUser:
		return badge(colorBadgeSecondary, role)
	default:
		return badge(colorBadgeSecondary, fallbackLabel(role))
	}
}

func fallbackLabel(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
