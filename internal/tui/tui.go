// Package tui is the terminal front end for the planner: a month
// calendar with per-day notes next to the two task lists.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"planner/internal/client"
)

func Run(c *client.Client) error {
	m := newAppModel(c)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
