package tui

import (
	"os"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(client *api.Client, sessions store.SessionStore) error {
	// A TUI must never log to the terminal it is drawing on.
	if os.Getenv("TASKDECK_DEBUG") != "" {
		f, err := tea.LogToFile("taskdeck-debug.log", "debug")
		if err == nil {
			defer f.Close()
		}
	}

	m := newAppModel(client, sessions)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
