package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	heading := lipgloss.NewStyle().Bold(true).Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(bodyW + 4).
		Render(heading + "\n\n" + content)
	if width > lipgloss.Width(box) {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}

func renderConfirmModal(width int, c confirmState) string {
	// Avoid borders on the buttons: some terminals show background
	// artifacts when nesting bordered components inside a modal.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render("Delete")
	cancel := btnBase.Render("Cancel")
	if c.focus == confirmFocusConfirm {
		confirm = btnActive.Render("Delete")
	} else {
		cancel = btnActive.Render("Cancel")
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	doomed := styleError().Render(c.name)
	body := lipgloss.NewStyle().Width(bodyW).Render(
		"This will permanently delete the " + c.kind + " " + doomed + ".")
	if c.kind == "project" {
		body = lipgloss.NewStyle().Width(bodyW).Render(
			"This will permanently delete the project " + doomed + " and all of its tasks.")
	}
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{body, "", controls, "", help}, "\n")
	return renderModalBox(width, "Confirm delete", content)
}
