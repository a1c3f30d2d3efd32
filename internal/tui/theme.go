package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so semantic colors are lipgloss.AdaptiveColor pairs and "faint" styling is
// only applied on dark backgrounds (faint text on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	// Headings/breadcrumbs and other secondary chrome.
	colorChromeMutedFg lipgloss.TerminalColor = ac("240", "245")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorControlBg lipgloss.TerminalColor = ac("253", "238")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	colorError lipgloss.TerminalColor = ac("160", "203")

	// Badge colors follow the web client's bootstrap palette: warning,
	// primary, success and the gray "secondary" fallback.
	colorBadgeWarning   lipgloss.TerminalColor = ac("#b88207", "#f0ad4e")
	colorBadgePrimary   lipgloss.TerminalColor = ac("#0d6efd", "#6ea8fe")
	colorBadgeSuccess   lipgloss.TerminalColor = ac("#146c43", "#75b798")
	colorBadgeDanger    lipgloss.TerminalColor = ac("#b02a37", "#ea868f")
	colorBadgeSecondary lipgloss.TerminalColor = ac("245", "243")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// darkBackground is resolved once at startup; termenv queries the terminal,
// which must not happen mid-render.
var darkBackground = termenv.HasDarkBackground()

func hasDarkBackground() bool {
	return darkBackground
}
